package core

import "math"

// Accuracy scores a guess (channels in [0, 255]) against the seed
// (channels in [0, 1]). It is the product over channels of
// 1 - |guess/255 - seed|, so one bad channel drags the whole score down.
func Accuracy(guess [ChannelCount]float64, seed Color) float64 {
	acc := 1.0
	for _, ch := range AllChannels() {
		diff := math.Abs(guess[ch]/ChannelMax - seed.Channel(ch))
		acc *= 1 - diff
	}
	return clampUnit(acc)
}

// GuessAccuracy scores the committed integer values of g against seed.
func GuessAccuracy(g Guess, seed Color) float64 {
	v := g.Values()
	return Accuracy([ChannelCount]float64{float64(v[0]), float64(v[1]), float64(v[2])}, seed)
}

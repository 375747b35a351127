package main

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gopendulum/environment/envconfig"
	"github.com/samuelfneumann/gopendulum/utils/progressbar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Rolls out a random policy on the pendulum swing-up environment and
// prints the return of each episode.
func main() {
	seed := uint64(time.Now().UnixNano())

	config := envconfig.NewConfig(envconfig.Pendulum, envconfig.SwingUp,
		true, 200, 1.0)
	pendulum, _, err := config.Create(seed)
	if err != nil {
		panic(err)
	}

	src := rand.NewSource(seed)
	torque := distuv.Uniform{Min: -2.0, Max: 2.0, Src: src}

	episodes := 10
	steps := 200

	bar := progressbar.New(50, episodes*steps)

	for episode := 0; episode < episodes; episode++ {
		step := pendulum.Reset()
		episodeReturn := 0.0

		for !step.Last() {
			action := mat.NewVecDense(1, []float64{torque.Rand()})
			step, _ = pendulum.Step(action)
			episodeReturn += step.Reward

			bar.Increment()
			bar.Display()
		}

		fmt.Printf("\nEpisode %v  |  Return: %.2f\n", episode,
			episodeReturn)
	}
	bar.Close()
}

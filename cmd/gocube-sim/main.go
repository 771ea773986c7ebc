// GoCube Simulator - CLI application for playing with an animated 3x3x3 cube.
package main

import (
	"github.com/SeamusWaldron/gocube_simulator/internal/cli"
)

func main() {
	cli.Execute()
}

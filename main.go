package main

import "github.com/aadit1011/Insurance-Price-Prediction-Model/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/wld-code/TinyML-for-motor/internal/cmd"
)

func main() {
	cmd.Execute()
}

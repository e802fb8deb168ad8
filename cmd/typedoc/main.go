package main

import (
	"fmt"
	"os"

	"github.com/viant/typedoc/log"
	"github.com/viant/typedoc/runner"
)

func main() {
	code, err := Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code |= runner.ExitFailed
	}
	_ = log.Sync()
	os.Exit(code)
}

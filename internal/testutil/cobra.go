package testutil

import (
	"bytes"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/cobra"
)

func Execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	// Capture the output of the command to a string
	// https://stackoverflow.com/questions/10473800/in-go-how-do-i-capture-stdout-of-a-function-into-a-string#comment46866149_10476304
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	// Libraries like pterm grab the os.Stdout *os.File at init time, so
	// swapping the variable alone is not enough: redirect file descriptor 1
	// itself for the duration of the command.
	savedFd, err := syscall.Dup(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := syscall.Dup2(int(w.Fd()), 1); err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	c.SetArgs(args)
	err = c.Execute()

	_ = syscall.Dup2(savedFd, 1)
	_ = syscall.Close(savedFd)
	os.Stdout = old
	w.Close()
	out := <-outC

	return strings.TrimSpace(out), err
}

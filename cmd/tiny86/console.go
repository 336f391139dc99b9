package main

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// keyBuffer is how many keystrokes may queue before the reader blocks.
const keyBuffer = 64

// console reads raw keystrokes from the terminal in its own goroutine and
// hands them to the keyboard hook through a channel.
type console struct {
	in       io.Reader
	fd       int
	oldState *term.State
	keys     chan byte
	stopped  sync.Once
}

// startConsole puts the terminal behind f in raw mode and starts reading.
func startConsole(f *os.File) (*console, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	c := newConsole(f)
	c.fd = fd
	c.oldState = oldState
	go c.read()

	return c, nil
}

func newConsole(in io.Reader) *console {
	return &console{
		in:   in,
		keys: make(chan byte, keyBuffer),
	}
}

// read copies bytes into the key channel until the reader fails.
func (c *console) read() {
	defer close(c.keys)

	buf := make([]byte, 1)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			b := buf[0]
			// Modern terminals send DEL for Backspace.
			if b == 0x7F {
				b = 0x08
			}
			c.keys <- b
		}
		if err != nil {
			return
		}
	}
}

// Keys returns the keystroke channel.
func (c *console) Keys() <-chan byte {
	return c.keys
}

// Stop restores the terminal. The reader goroutine ends with the process.
func (c *console) Stop() {
	c.stopped.Do(func() {
		if c.oldState != nil {
			_ = term.Restore(c.fd, c.oldState)
		}
	})
}

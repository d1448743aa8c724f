package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	sdkerrors "github.com/0xAtelerix/esdt/library/errors"
)

const ErrFollowedFileGone = sdkerrors.SDKError("followed file was removed or renamed")

// followLines calls handle for every line already in path and for every line
// appended to it afterwards, until ctx is cancelled. A trailing line without
// a newline is held back until it is completed.
func followLines(ctx context.Context, path string, handle func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	reader := bufio.NewReader(f)

	var partial strings.Builder

	drain := func() error {
		for {
			chunk, err := reader.ReadString('\n')
			partial.WriteString(chunk)

			if errors.Is(err, io.EOF) {
				return nil
			}

			if err != nil {
				return err
			}

			line := strings.TrimRight(partial.String(), "\r\n")
			partial.Reset()

			if err := handle(line); err != nil {
				return err
			}
		}
	}

	if err := drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				return fmt.Errorf("%w: %s", ErrFollowedFileGone, path)
			}

			if ev.Has(fsnotify.Write) {
				if err := drain(); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

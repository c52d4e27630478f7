// Package main dumps and edits the save image on a device as JSON.
//
//	sdop-save-edit dump            print the save as JSON
//	sdop-save-edit load < s.json   validate and write a JSON save
//	sdop-save-edit blank           write a fresh game
//
// The device comes from the usual SAVE_* environment, overridable by flags.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MRamiBalles/sdop/internal/infra/storage"
	"github.com/MRamiBalles/sdop/internal/platform/clock"
	"github.com/MRamiBalles/sdop/internal/platform/config"
	"github.com/MRamiBalles/sdop/internal/save"
	"github.com/MRamiBalles/sdop/internal/sim"
)

func main() {
	backend := flag.String("backend", "", "override SAVE_BACKEND")
	path := flag.String("path", "", "override SAVE_PATH")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: sdop-save-edit [-backend b] [-path p] dump|load|blank")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.Save.Backend = *backend
	}
	if *path != "" {
		cfg.Save.Path = *path
	}

	ctx := context.Background()
	device, closeDevice, err := storage.OpenDevice(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "device: %v\n", err)
		os.Exit(1)
	}
	defer closeDevice()

	if err := run(ctx, flag.Arg(0), device, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, device storage.Device, in io.Reader, out io.Writer) error {
	switch cmd {
	case "dump":
		s, err := storage.ReadSave(ctx, device)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)

	case "load":
		var s save.SaveFile
		dec := json.NewDecoder(in)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("failed to parse save JSON: %w", err)
		}
		if err := storage.WriteSave(ctx, device, s); err != nil {
			var ee *save.EncodeError
			if errors.As(err, &ee) {
				return fmt.Errorf("save rejected: %w", ee)
			}
			return err
		}
		fmt.Fprintf(out, "wrote %d bytes at %#x\n", save.Size, storage.SaveAddr)
		return nil

	case "blank":
		now := clock.Real{}.Now()
		s := save.Generate(now, sim.NewGameContext(now))
		if err := storage.WriteSave(ctx, device, s); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote a new game with %s\n", s.Pet.Name)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

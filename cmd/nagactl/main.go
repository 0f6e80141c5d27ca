// nagactl controls the Razer Naga Trinity: switch its operating mode, query
// and configure it, and discover which key codes the side buttons emit in
// Driver mode.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/hidworks/nagactl/internal/buttons"
	"github.com/hidworks/nagactl/internal/device"
	"github.com/hidworks/nagactl/internal/hidraw"
	"github.com/hidworks/nagactl/internal/mode"
	"github.com/hidworks/nagactl/internal/razer"
	"github.com/hidworks/nagactl/internal/usbctl"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: nagactl [flags] <command>

commands:
  list                 show the device's HID interfaces
  info                 firmware version, serial number and current mode
  mode [normal|driver] show or switch the operating mode
  dpi [x [y]]          show or set the DPI
  rate [125|500|1000]  show or set the polling rate
  discover             map side buttons to key codes (Ctrl+C to finish)
  reset                force the device back to Normal mode

flags:
`)
	flag.PrintDefaults()
}

func main() {
	useHidraw := flag.Bool("hidraw", false, "use hidraw feature reports instead of USB control transfers")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	if err := run(ctx, *useHidraw, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "nagactl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, useHidraw bool, args []string) error {
	cmd, rest := args[0], args[1:]

	if cmd == "list" {
		return runList()
	}

	transport, err := openTransport(useHidraw)
	if err != nil {
		if errors.Is(err, razer.ErrDeviceNotFound) {
			return fmt.Errorf("Naga Trinity (%04x:%04x) not found", razer.VendorID, razer.ProductID)
		}
		return err
	}
	defer transport.Close()

	ctrl := &mode.Controller{Transport: transport}

	switch cmd {
	case "info":
		return runInfo(ctx, transport, ctrl)
	case "mode":
		return runMode(ctx, ctrl, rest)
	case "dpi":
		return runDPI(ctx, transport, rest)
	case "rate":
		return runRate(ctx, transport, rest)
	case "discover":
		return runDiscover(ctx, ctrl)
	case "reset":
		_, err := ctrl.Set(ctx, razer.ModeNormal)
		if err == nil {
			fmt.Println("Device reset to Normal mode")
		}
		return err
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openTransport(useHidraw bool) (razer.Transport, error) {
	if useHidraw {
		return hidraw.Open()
	}
	return usbctl.Open()
}

func runList() error {
	ifaces, err := hidraw.List()
	if err != nil {
		return err
	}
	if len(ifaces) == 0 {
		return fmt.Errorf("no Razer interfaces found")
	}
	for _, i := range ifaces {
		fmt.Printf("iface %d  usage %04x:%04x  %s  (%s)\n",
			i.Interface, i.UsagePage, i.Usage, i.Product, i.Path)
	}
	return nil
}

func runInfo(ctx context.Context, tr razer.Transport, ctrl *mode.Controller) error {
	dev := &device.Device{Transport: tr}

	fw, err := dev.FirmwareVersion(ctx)
	if err != nil {
		return err
	}
	serial, err := dev.SerialNumber(ctx)
	if err != nil {
		return err
	}
	m, err := ctrl.Get(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Firmware:", fw)
	fmt.Println("Serial:  ", serial)
	fmt.Println("Mode:    ", m)
	return nil
}

func runMode(ctx context.Context, ctrl *mode.Controller, args []string) error {
	if len(args) == 0 {
		m, err := ctrl.Get(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Device mode:", m)
		return nil
	}

	var want razer.Mode
	switch args[0] {
	case "normal":
		want = razer.ModeNormal
	case "driver":
		want = razer.ModeDriver
	default:
		return fmt.Errorf("unknown mode %q (use normal or driver)", args[0])
	}

	observed, err := ctrl.Set(ctx, want)
	if err != nil {
		return err
	}
	fmt.Println("Device mode:", observed)
	return nil
}

func runDPI(ctx context.Context, tr razer.Transport, args []string) error {
	dev := &device.Device{Transport: tr}

	if len(args) == 0 {
		x, y, err := dev.DPI(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("DPI: %d x %d\n", x, y)
		return nil
	}

	x, err := parseUint16(args[0])
	if err != nil {
		return fmt.Errorf("bad dpi %q: %w", args[0], err)
	}
	y := x
	if len(args) > 1 {
		if y, err = parseUint16(args[1]); err != nil {
			return fmt.Errorf("bad dpi %q: %w", args[1], err)
		}
	}

	if err := dev.SetDPI(ctx, x, y); err != nil {
		return err
	}
	fmt.Printf("DPI set to %d x %d\n", x, y)
	return nil
}

func runRate(ctx context.Context, tr razer.Transport, args []string) error {
	dev := &device.Device{Transport: tr}

	if len(args) == 0 {
		hz, err := dev.PollingRate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Polling rate: %d Hz\n", hz)
		return nil
	}

	hz, err := parseUint16(args[0])
	if err != nil {
		return fmt.Errorf("bad rate %q: %w", args[0], err)
	}
	if err := dev.SetPollingRate(ctx, hz); err != nil {
		return err
	}
	fmt.Printf("Polling rate set to %d Hz\n", hz)
	return nil
}

func runDiscover(ctx context.Context, ctrl *mode.Controller) error {
	fmt.Println("Press each side button in turn. Ctrl+C when done.")

	session := &buttons.Session{
		Modes: ctrl,
		OnPress: func(code uint16, name string) {
			fmt.Printf("  %s (code %d)\n", name, code)
		},
	}

	mapping, err := session.Run(ctx)
	if len(mapping) > 0 {
		fmt.Println("\nSide button key codes:")
		codes := make([]int, 0, len(mapping))
		for code := range mapping {
			codes = append(codes, int(code))
		}
		sort.Ints(codes)
		for _, code := range codes {
			fmt.Printf("  %s: %d\n", mapping[uint16(code)], code)
		}
	}
	return err
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Digicrat/gorfxrx/pkg/gorfxrx"
)

// fileConfig mirrors the optional TOML configuration file.
type fileConfig struct {
	Receiver struct {
		Device      string `toml:"device"`
		Baud        int    `toml:"baud"`
		DiscardMs   int    `toml:"discard_timeout_ms"`
		AckMs       int    `toml:"ack_timeout_ms"`
		DupWindowMs int    `toml:"dup_window_ms"`
	} `toml:"receiver"`
}

var (
	rootCmd = &cobra.Command{
		Use:   "gorfxrx",
		Short: "Decode RF telegrams from an RFXCOM-style receiver",
		Long:  "gorfxrx decodes RF sensor telegrams using the gorfxrx library, either from a live receiver or from captured hex.",
	}

	decodeCmd = &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode a captured telegram (interactive without arguments)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive()
			}
			return runDecode(args[0])
		},
	}

	listenCmd = &cobra.Command{
		Use:   "listen",
		Short: "Poll a live receiver and print decoded events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen()
		},
	}

	configPath    string
	device        string
	baud          int
	withDuplicate bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	listenCmd.Flags().StringVar(&device, "device", "", "serial path or host:port of the receiver")
	listenCmd.Flags().IntVar(&baud, "baud", 0, "serial baud rate (default 4800)")
	listenCmd.Flags().BoolVar(&withDuplicate, "duplicates", false, "print repeat transmissions as well")
	rootCmd.AddCommand(decodeCmd, listenCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive() error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("gorfxrx decode mode. Paste a hex telegram and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(line); err != nil {
			logrus.WithError(err).Error("failed to decode telegram")
		}
	}
	return scanner.Err()
}

func runDecode(hexStr string) error {
	ev, err := gorfxrx.DecodeHex(hexStr)
	if err != nil {
		return err
	}
	fmt.Println(ev.String())
	return nil
}

func runListen() error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if cfg.Device == "" {
		return errors.New("no receiver device configured (use --device or a config file)")
	}
	rx, err := gorfxrx.Open(cfg)
	if err != nil {
		return err
	}
	defer rx.Close()
	logrus.WithField("device", cfg.Device).Info("listening")

	for {
		ev, err := rx.Read(time.Second)
		if err != nil {
			return err
		}
		if ev == nil {
			continue
		}
		if ev.Duplicate && !withDuplicate {
			continue
		}
		fmt.Println(ev.String())
	}
}

func buildConfig() (gorfxrx.Config, error) {
	var cfg gorfxrx.Config
	if configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", configPath, err)
		}
		cfg.Device = fc.Receiver.Device
		cfg.Baud = fc.Receiver.Baud
		cfg.DiscardTimeout = time.Duration(fc.Receiver.DiscardMs) * time.Millisecond
		cfg.AckTimeout = time.Duration(fc.Receiver.AckMs) * time.Millisecond
		cfg.DupWindow = time.Duration(fc.Receiver.DupWindowMs) * time.Millisecond
	}
	// flags override the file
	if device != "" {
		cfg.Device = device
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	return cfg, nil
}

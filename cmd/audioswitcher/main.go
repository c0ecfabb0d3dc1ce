// Command audioswitcher lists the Bluetooth radio of the system and the
// devices it knows about, and enables or disables their audio services.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/audioswitcher/bluetooth"
	"github.com/audioswitcher/bluetooth/internal/config"
	"github.com/audioswitcher/bluetooth/internal/render"
)

// session is the part of *bluetooth.Radio the commands use.
type session interface {
	Info() *bluetooth.Radio
	Devices(opts bluetooth.SearchOptions) ([]bluetooth.Device, error)
	Device(address bluetooth.MAC, opts bluetooth.SearchOptions) (bluetooth.Device, error)
	Services(d bluetooth.Device) ([]bluetooth.UUID, error)
	SetServiceState(d bluetooth.Device, service bluetooth.UUID, enable bool) error
	Close() error
}

type radioSession struct {
	*bluetooth.Radio
}

func (s radioSession) Info() *bluetooth.Radio {
	return s.Radio
}

func openRadioSession() (session, error) {
	radio, err := bluetooth.OpenRadio()
	if err != nil {
		return nil, err
	}
	return radioSession{radio}, nil
}

// app holds the state shared by all commands.
type app struct {
	// flags
	verbose           bool
	configPath        string
	format            string
	noInquiry         bool
	timeoutMultiplier uint8
	connected         bool
	remembered        bool
	authenticated     bool
	unknown           bool

	cfg         config.Config
	logger      *zap.Logger
	openSession func() (session, error)
}

func newApp() *app {
	return &app{openSession: openRadioSession}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "audioswitcher",
		Short: "List Bluetooth devices and switch their audio services",
		Long: `audioswitcher lists the Bluetooth radio of this system and the devices it
knows about: paired, remembered, connected, or in range.

Run without arguments to list all devices.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runDevices,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/audioswitcher/config.yaml)")
	pf.StringVarP(&a.format, "format", "o", "", "Output format: text, json or yaml")
	pf.BoolVar(&a.noInquiry, "no-inquiry", false, "Don't search for new devices, only list the ones the system knows")
	pf.Uint8Var(&a.timeoutMultiplier, "timeout-multiplier", 0, "Inquiry length in units of 1.28 seconds (at most 48)")
	pf.BoolVar(&a.connected, "connected", false, "Only list connected devices")
	pf.BoolVar(&a.remembered, "remembered", false, "Only list remembered devices")
	pf.BoolVar(&a.authenticated, "authenticated", false, "Only list authenticated (paired) devices")
	pf.BoolVar(&a.unknown, "unknown", false, "Only list devices unknown to the system")

	root.AddCommand(a.devicesCmd(), a.radioCmd(), a.servicesCmd(), a.serviceCmd())
	return root
}

// setup initializes the logger and loads the configuration. Flags override
// the configuration file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.logger == nil {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if a.verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	path := a.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			a.logger.Debug("no user config directory", zap.Error(err))
		}
	}
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		a.logger.Debug("loaded config", zap.String("path", path), zap.String("format", cfg.Format))
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("no-inquiry") {
		cfg.Search.Inquiry = !a.noInquiry
	}
	if flags.Changed("timeout-multiplier") {
		cfg.Search.TimeoutMultiplier = a.timeoutMultiplier
	}
	if a.connected || a.remembered || a.authenticated || a.unknown {
		cfg.Search.Connected = a.connected
		cfg.Search.Remembered = a.remembered
		cfg.Search.Authenticated = a.authenticated
		cfg.Search.Unknown = a.unknown
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// renderer returns a renderer for the command output. Table headers are only
// styled when writing to a terminal.
func (a *app) renderer(cmd *cobra.Command) *render.Renderer {
	format, _ := render.ParseFormat(a.cfg.Format)
	out := cmd.OutOrStdout()
	r := render.New(out, format)
	r.Styled = isTerminal(out)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && terminal.IsTerminal(int(f.Fd()))
}

// withSession opens the radio, runs fn and closes the radio again.
func (a *app) withSession(fn func(s session) error) (err error) {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	info := s.Info()
	a.logger.Debug("opened radio", zap.String("name", info.Name), zap.Stringer("address", info.Address))
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			a.logger.Warn("failed to close radio", zap.Error(closeErr))
			if err == nil {
				err = closeErr
			}
			return
		}
		a.logger.Debug("closed radio")
	}()
	return fn(s)
}

func main() {
	if err := newApp().rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

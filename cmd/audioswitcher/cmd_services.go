package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/audioswitcher/bluetooth"
)

func (a *app) servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "services <address>",
		Short:   "List the services enabled on a device",
		Example: "  audioswitcher services 00:1a:7d:da:71:13",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := bluetooth.ParseMAC(args[0])
			if err != nil {
				return err
			}
			return a.withSession(func(s session) error {
				d, err := s.Device(address, a.lookupOptions())
				if err != nil {
					return err
				}
				services, err := s.Services(d)
				if err != nil {
					return err
				}
				a.logger.Debug("found services", zap.Stringer("address", address), zap.Int("count", len(services)))
				return a.renderer(cmd).Services(services)
			})
		},
	}
}

func (a *app) serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Enable or disable a service on a device",
		Long: `Enables or disables a service on a device. On Windows, enabling the audio
sink (110b) or hands-free (111e) service of a headset adds the matching audio
endpoint, and disabling it removes the endpoint.`,
	}
	for _, enable := range []bool{true, false} {
		enable := enable
		use, short := "enable", "Enable a service on a device"
		if !enable {
			use, short = "disable", "Disable a service on a device"
		}
		cmd.AddCommand(&cobra.Command{
			Use:     use + " <address> <service>",
			Short:   short,
			Example: "  audioswitcher service " + use + " 00:1a:7d:da:71:13 110b",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runSetServiceState(cmd, args, enable)
			},
		})
	}
	return cmd
}

func (a *app) runSetServiceState(cmd *cobra.Command, args []string, enable bool) error {
	address, err := bluetooth.ParseMAC(args[0])
	if err != nil {
		return err
	}
	service, err := parseService(args[1])
	if err != nil {
		return err
	}
	return a.withSession(func(s session) error {
		d, err := s.Device(address, a.lookupOptions())
		if err != nil {
			return err
		}
		if err := s.SetServiceState(d, service, enable); err != nil {
			return err
		}
		a.logger.Info("changed service state",
			zap.Stringer("address", address),
			zap.Stringer("service", service),
			zap.Bool("enabled", enable))
		state := "enabled"
		if !enable {
			state = "disabled"
		}
		name := bluetooth.ServiceName(service)
		if name == "" {
			name = service.String()
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s (%s)\n", state, name, d.Name, d.Address)
		return err
	})
}

// lookupOptions are the search options used to find a device by address.
// The device has to be known to the system to have services, so no inquiry
// is made.
func (a *app) lookupOptions() bluetooth.SearchOptions {
	opts := a.cfg.SearchOptions()
	opts.ReturnAuthenticated = true
	opts.ReturnRemembered = true
	opts.ReturnConnected = true
	opts.IssueInquiry = false
	return opts
}

// parseService accepts a full UUID or the 16-bit short form of a Bluetooth
// SIG UUID, such as 110b or 0x110B.
func parseService(s string) (bluetooth.UUID, error) {
	if len(s) == 36 {
		return bluetooth.ParseUUID(s)
	}
	short := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(short) != 4 {
		return bluetooth.UUID{}, fmt.Errorf("invalid service %q: expected a UUID or a 16-bit short UUID", s)
	}
	n, err := strconv.ParseUint(short, 16, 16)
	if err != nil {
		return bluetooth.UUID{}, fmt.Errorf("invalid service %q: %w", s, err)
	}
	return bluetooth.New16BitUUID(uint16(n)), nil
}

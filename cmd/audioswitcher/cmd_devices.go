package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/audioswitcher/bluetooth"
)

func (a *app) devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List Bluetooth devices",
		Long: `Lists the devices known to the Bluetooth radio. By default this includes
devices in range that the system doesn't know yet, which takes a few seconds
(see --no-inquiry and --timeout-multiplier).`,
		Args: cobra.NoArgs,
		RunE: a.runDevices,
	}
}

func (a *app) runDevices(cmd *cobra.Command, args []string) error {
	opts := a.cfg.SearchOptions()
	return a.withSession(func(s session) error {
		a.logger.Debug("searching devices",
			zap.Bool("inquiry", opts.IssueInquiry),
			zap.Duration("inquiry_duration", opts.InquiryDuration()))
		devices, err := s.Devices(opts)
		if errors.Is(err, bluetooth.ErrNoDevicesFound) {
			a.logger.Debug("no devices found")
			devices, err = nil, nil
		}
		if err != nil {
			return err
		}
		a.logger.Debug("found devices", zap.Int("count", len(devices)))
		return a.renderer(cmd).Devices(devices)
	})
}

// Package render writes radios, devices and services in one of the supported
// output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/audioswitcher/bluetooth"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, json or yaml)", s)
}

// Renderer writes values to an output stream.
type Renderer struct {
	w      io.Writer
	format Format

	// Styled enables bold table headers. It should only be set when the
	// output is a terminal.
	Styled bool
}

func New(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

type deviceView struct {
	Name          string `json:"name" yaml:"name"`
	Address       string `json:"address" yaml:"address"`
	Class         string `json:"class" yaml:"class"`
	ClassOfDevice string `json:"class_of_device" yaml:"class_of_device"`
	Connected     bool   `json:"connected" yaml:"connected"`
	Remembered    bool   `json:"remembered" yaml:"remembered"`
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	LastSeen      string `json:"last_seen" yaml:"last_seen"`
	LastUsed      string `json:"last_used" yaml:"last_used"`
}

type radioView struct {
	Name          string `json:"name" yaml:"name"`
	Address       string `json:"address" yaml:"address"`
	ClassOfDevice string `json:"class_of_device" yaml:"class_of_device"`
	Manufacturer  uint16 `json:"manufacturer" yaml:"manufacturer"`
	LMPSubversion uint16 `json:"lmp_subversion" yaml:"lmp_subversion"`
}

type serviceView struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Timestamp formats t as RFC 3339, or "never" for the zero time.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}

func newDeviceView(d bluetooth.Device) deviceView {
	return deviceView{
		Name:          d.Name,
		Address:       d.Address.String(),
		Class:         d.Class.String(),
		ClassOfDevice: d.ClassOfDevice.String(),
		Connected:     d.Connected,
		Remembered:    d.Remembered,
		Authenticated: d.Authenticated,
		LastSeen:      Timestamp(d.LastSeen),
		LastUsed:      Timestamp(d.LastUsed),
	}
}

// Devices writes a list of devices.
func (r *Renderer) Devices(devices []bluetooth.Device) error {
	views := make([]deviceView, 0, len(devices))
	for _, d := range devices {
		views = append(views, newDeviceView(d))
	}
	if r.format != FormatText {
		return r.encode(views)
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.Name, v.Address, v.Class,
			yesNo(v.Connected), yesNo(v.Remembered), yesNo(v.Authenticated),
			v.LastSeen, v.LastUsed,
		})
	}
	return r.table([]string{"NAME", "ADDRESS", "CLASS", "CONNECTED", "REMEMBERED", "AUTHENTICATED", "LAST SEEN", "LAST USED"}, rows)
}

// Radio writes a single radio.
func (r *Renderer) Radio(radio *bluetooth.Radio) error {
	v := radioView{
		Name:          radio.Name,
		Address:       radio.Address.String(),
		ClassOfDevice: radio.ClassOfDevice.String(),
		Manufacturer:  radio.Manufacturer,
		LMPSubversion: radio.LMPSubversion,
	}
	if r.format != FormatText {
		return r.encode(v)
	}
	return r.table([]string{"NAME", "ADDRESS", "CLASS", "MANUFACTURER", "SUBVERSION"}, [][]string{{
		v.Name, v.Address, radio.ClassOfDevice.MajorName(),
		"0x" + strconv.FormatUint(uint64(v.Manufacturer), 16),
		"0x" + strconv.FormatUint(uint64(v.LMPSubversion), 16),
	}})
}

// Services writes a list of service UUIDs, with their name when it is known.
func (r *Renderer) Services(services []bluetooth.UUID) error {
	views := make([]serviceView, 0, len(services))
	for _, s := range services {
		views = append(views, serviceView{UUID: s.String(), Name: bluetooth.ServiceName(s)})
	}
	if r.format != FormatText {
		return r.encode(views)
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.UUID, v.Name})
	}
	return r.table([]string{"UUID", "NAME"}, rows)
}

func (r *Renderer) encode(v interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", r.format)
}

func (r *Renderer) table(headers []string, rows [][]string) error {
	headerStyle := lipgloss.NewStyle().Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	if r.Styled {
		headerStyle = headerStyle.Bold(true)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(r.w, t.String())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

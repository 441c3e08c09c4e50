// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vmm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Code-Hex/vz/v3"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aibor/vzrun/internal/console"
	"github.com/aibor/vzrun/internal/vzrun"
)

// Supported reports whether the host provides the virtualization capability.
// It probes a trivial device constructor, which fails on hosts without a
// usable Virtualization.framework.
func Supported() bool {
	_, err := vz.NewVirtioEntropyDeviceConfiguration()

	return err == nil
}

// newConfiguration assembles the complete device topology for the given
// spec and validates it.
//
// Each machine gets exactly one entropy device, one memory balloon device,
// one NAT attached network device with a fresh locally administered MAC
// address, and one serial console bound to the given console transport.
// Storage devices are derived 1:1 from the spec's disk list. Validation is
// mandatory and runs before any machine is created from the configuration.
func newConfiguration(
	spec vzrun.Spec,
	input, output *os.File,
) (*vz.VirtualMachineConfiguration, error) {
	bootLoader, err := newBootLoader(spec.Boot)
	if err != nil {
		return nil, err
	}

	config, err := vz.NewVirtualMachineConfiguration(
		bootLoader,
		uint(spec.CPUs),
		spec.Memory,
	)
	if err != nil {
		return nil, fmt.Errorf("machine configuration: %w", err)
	}

	entropy, err := vz.NewVirtioEntropyDeviceConfiguration()
	if err != nil {
		return nil, fmt.Errorf("entropy device: %w", err)
	}

	config.SetEntropyDevicesVirtualMachineConfiguration(
		[]*vz.VirtioEntropyDeviceConfiguration{entropy},
	)

	balloon, err := vz.NewVirtioTraditionalMemoryBalloonDeviceConfiguration()
	if err != nil {
		return nil, fmt.Errorf("memory balloon device: %w", err)
	}

	config.SetMemoryBalloonDevicesVirtualMachineConfiguration(
		[]vz.MemoryBalloonDeviceConfiguration{balloon},
	)

	networkDevice, err := newNetworkDevice()
	if err != nil {
		return nil, err
	}

	config.SetNetworkDevicesVirtualMachineConfiguration(
		[]*vz.VirtioNetworkDeviceConfiguration{networkDevice},
	)

	serialPort, err := newConsoleDevice(input, output)
	if err != nil {
		return nil, err
	}

	config.SetSerialPortsVirtualMachineConfiguration(
		[]*vz.VirtioConsoleDeviceSerialPortConfiguration{serialPort},
	)

	blockDevices, err := newBlockDevices(spec.Disks)
	if err != nil {
		return nil, err
	}

	config.SetStorageDevicesVirtualMachineConfiguration(blockDevices)

	valid, err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	if !valid {
		return nil, ErrConfigInvalid
	}

	return config, nil
}

// newNetworkDevice builds the single NAT attached virtio network device.
// The MAC address is generated fresh per launch and not persisted, so
// restarts produce a different address.
func newNetworkDevice() (*vz.VirtioNetworkDeviceConfiguration, error) {
	attachment, err := vz.NewNATNetworkDeviceAttachment()
	if err != nil {
		return nil, fmt.Errorf("NAT attachment: %w", err)
	}

	device, err := vz.NewVirtioNetworkDeviceConfiguration(attachment)
	if err != nil {
		return nil, fmt.Errorf("network device: %w", err)
	}

	mac, err := vz.NewRandomLocallyAdministeredMACAddress()
	if err != nil {
		return nil, fmt.Errorf("MAC address: %w", err)
	}

	device.SetMACAddress(mac)

	return device, nil
}

// newConsoleDevice binds the console transport files as virtio serial port.
func newConsoleDevice(
	input, output *os.File,
) (*vz.VirtioConsoleDeviceSerialPortConfiguration, error) {
	attachment, err := vz.NewFileHandleSerialPortAttachment(input, output)
	if err != nil {
		return nil, fmt.Errorf("serial port attachment: %w", err)
	}

	serialPort, err := vz.NewVirtioConsoleDeviceSerialPortConfiguration(
		attachment,
	)
	if err != nil {
		return nil, fmt.Errorf("console device: %w", err)
	}

	return serialPort, nil
}

// Machine is a single virtual machine instance. The underlying framework
// handle is shared between the starting goroutine and the state watcher and
// guarded by an exclusive-write shared-read lock.
type Machine struct {
	id string

	mu   sync.RWMutex
	vzvm *vz.VirtualMachine
}

// NewMachine creates a virtual machine for the given validated spec.
//
// The complete device topology is assembled and validated first. No machine
// is ever created from a configuration that did not pass validation.
func NewMachine(spec vzrun.Spec, cons *console.Console) (*Machine, error) {
	config, err := newConfiguration(spec, cons.Input(), cons.Output())
	if err != nil {
		return nil, err
	}

	vzvm, err := vz.NewVirtualMachine(config)
	if err != nil {
		return nil, fmt.Errorf("create machine: %w", err)
	}

	machine := &Machine{
		id:   uuid.NewString(),
		vzvm: vzvm,
	}

	return machine, nil
}

// ID returns the per-launch machine identifier.
func (m *Machine) ID() string {
	return m.id
}

// Run starts the machine and blocks until it reaches a terminal state or the
// context is done.
//
// The start operation and the state watcher run concurrently. A start
// failure cancels the watcher and is returned immediately. Once started, the
// process lifetime is pinned to the machine: Run returns nil when the guest
// stops cleanly and [ErrMachineFailed] if it enters the error state.
func (m *Machine) Run(ctx context.Context) error {
	// Subscribe before the start request so no transition is missed.
	m.mu.RLock()
	states := m.vzvm.StateChangedNotify()
	m.mu.RUnlock()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return m.start(ctx)
	})

	group.Go(func() error {
		return m.watch(ctx, states)
	})

	return group.Wait() //nolint:wrapcheck
}

// start submits the start request to the framework's serial execution
// context and forwards the one-shot completion signal.
func (m *Machine) start(ctx context.Context) error {
	done := make(chan error, 1)

	go func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		done <- m.vzvm.Start()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("start machine: %w", err)
		}

		slog.Debug("Machine started", slog.String("machine", m.id))

		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}

// watch consumes the machine's state change stream until a terminal state is
// reached or the context is done.
func (m *Machine) watch(
	ctx context.Context,
	states <-chan vz.VirtualMachineState,
) error {
	for {
		select {
		case state, ok := <-states:
			if !ok {
				return nil
			}

			slog.Debug("Machine state changed",
				slog.String("machine", m.id),
				slog.Any("state", state))

			switch state {
			case vz.VirtualMachineStateStopped:
				return nil
			case vz.VirtualMachineStateError:
				return ErrMachineFailed
			default:
			}
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		}
	}
}

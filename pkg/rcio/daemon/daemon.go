// Package daemon bridges a Device to MQTT: it publishes RC input and
// status events and executes commands received from clients.
//
// All Device access happens in the framework.Loop goroutine, both the
// periodic polling in Tick and the commands in HandleMessage.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/comm/mqtt"
	fx "github.com/robotalks/rcio.go/pkg/framework"
	"github.com/robotalks/rcio.go/pkg/rcio/device"
	"github.com/robotalks/rcio.go/pkg/rcio/msgs"
)

// DefaultStatusEvery is the number of ticks between status events.
const DefaultStatusEvery = 20

// Publisher sends a message to a topic.
type Publisher interface {
	Publish(topic string, msg msgs.SerializableMessage) error
}

// Daemon polls the Device and publishes events.
type Daemon struct {
	Device      *device.Device
	Publisher   Publisher
	Topics      mqtt.ControllerTopics
	StatusEvery int

	ticks     int
	rc        device.RCInput
	connected bool
}

// New creates a Daemon.
func New(dev *device.Device, pub Publisher, topics mqtt.ControllerTopics) *Daemon {
	return &Daemon{Device: dev, Publisher: pub, Topics: topics, StatusEvery: DefaultStatusEvery}
}

// Tick implements framework.Ticker.
func (d *Daemon) Tick(ctx context.Context, now time.Time) error {
	var errs fx.AggregatedError
	errs.Add(d.publishRCInput())
	every := d.StatusEvery
	if every <= 0 {
		every = DefaultStatusEvery
	}
	if d.ticks%every == 0 {
		errs.Add(d.PublishStatus())
	}
	d.ticks++
	return errs.Aggregate()
}

func (d *Daemon) publishRCInput() error {
	err := d.Device.Do(device.GetRCInput{Input: &d.rc})
	connected := err == nil
	if errors.Is(err, device.ErrNotConnected) {
		err = nil
	}
	if err != nil {
		return err
	}
	if connected != d.connected {
		glog.Infof("rc input connected: %v (%s)", connected, d.rc.Source)
		d.connected = connected
	}
	if !connected {
		return nil
	}
	ev := &msgs.RCInputEvent{Source: uint32(d.rc.Source), Connected: true, Values: make([]uint32, len(d.rc.Values))}
	for n, v := range d.rc.Values {
		ev.Values[n] = uint32(v)
	}
	return d.Publisher.Publish(d.Topics.RCInput(), ev)
}

// PublishStatus publishes a status snapshot. A partial snapshot is still
// published, carrying the read error.
func (d *Daemon) PublishStatus() error {
	s, err := d.Device.Snapshot()
	ev := &msgs.StatusEvent{
		State:   d.Device.State().String(),
		FreeMem: uint32(s.FreeMem),
		CpuLoad: uint32(s.CPULoad),
		Flags:   uint32(s.Flags),
		Alarms:  uint32(s.Alarms),
		VServo:  uint32(s.VServo),
		Arming:  uint32(s.Arming),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	if pubErr := d.Publisher.Publish(d.Topics.Status(), ev); pubErr != nil {
		return pubErr
	}
	return err
}

// HandleMessage implements framework.MessageHandler. Every command is
// answered on the reply topic.
func (d *Daemon) HandleMessage(ctx context.Context, msg fx.Message) {
	var reply msgs.SerializableMessage = &msgs.CommandOK{}
	if err := d.Execute(msg); err != nil {
		glog.Warningf("command %T: %v", msg, err)
		reply = msgs.NewCommandErr(err)
	}
	if err := d.Publisher.Publish(d.Topics.Reply(), reply); err != nil {
		glog.Errorf("publish reply: %v", err)
	}
}

// Execute runs a command message on the Device.
func (d *Daemon) Execute(msg fx.Message) error {
	switch m := msg.(type) {
	case *msgs.SetDebugCommand:
		if m.Level > 0xffff {
			return fmt.Errorf("debug level %d: %w", m.Level, device.ErrInvalidArgument)
		}
		return d.Device.Do(device.SetDebug{Level: uint16(m.Level)})
	case *msgs.ArmCommand:
		if m.Arm {
			return d.Device.Do(device.Arm{})
		}
		return d.Device.Do(device.Disarm{})
	case *msgs.SetServoCommand:
		if m.Value > 0xffff {
			return fmt.Errorf("servo value %d: %w", m.Value, device.ErrInvalidArgument)
		}
		return d.Device.Do(device.SetServo{Channel: int(m.Channel), Value: uint16(m.Value)})
	case *msgs.ClearAlarmsCommand:
		return d.Device.ClearAlarms()
	}
	return device.ErrUnsupportedCommand
}

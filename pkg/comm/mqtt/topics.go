package mqtt

import (
	"errors"
	"strings"
)

// ErrPublishTimeout indicates the broker didn't acknowledge in time.
var ErrPublishTimeout = errors.New("publish timeout")

// Topic suffixes under a controller.
const (
	TopicRCInput = "rc"
	TopicStatus  = "status"
	TopicCommand = "cmd"
	TopicReply   = "reply"
)

// ControllerTopics builds the topics of one controller, type/id/suffix.
type ControllerTopics struct {
	Type string
	ID   string
}

// Topic returns the topic for suffix.
func (t ControllerTopics) Topic(suffix string) string {
	return strings.Join([]string{t.Type, t.ID, suffix}, "/")
}

// RCInput is the topic for RC input events.
func (t ControllerTopics) RCInput() string { return t.Topic(TopicRCInput) }

// Status is the topic for status events.
func (t ControllerTopics) Status() string { return t.Topic(TopicStatus) }

// Command is the topic commands are received on.
func (t ControllerTopics) Command() string { return t.Topic(TopicCommand) }

// Reply is the topic command replies are sent to.
func (t ControllerTopics) Reply() string { return t.Topic(TopicReply) }

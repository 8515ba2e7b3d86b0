// Package msgs defines the messages exchanged between rciod and its
// clients over MQTT.
//
// Every payload is a Typed envelope carrying a type ID and the protobuf
// encoding of the message. Events flow from the daemon, commands flow
// to it and are answered with a reply.
package msgs

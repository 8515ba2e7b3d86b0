package main

import (
	"flag"
	"log"
	"os"
	"reflect"

	"github.com/robotalks/rcio.go/pkg/comm/mqtt"
	"github.com/robotalks/rcio.go/pkg/rcio/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/robo/"
	pattern = "#"
)

func init() {
	if val := os.Getenv("RCIO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&pattern, "topic", pattern, "Topic pattern to monitor.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub(pattern, func(topic string, payload []byte) {
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: [%s] %s", topic, reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), msg.String())
	})
	if err := q.Connect(); err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}

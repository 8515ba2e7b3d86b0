package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/comm/mqtt"
	"github.com/robotalks/rcio.go/pkg/env"
	"github.com/robotalks/rcio.go/pkg/framework"
	"github.com/robotalks/rcio.go/pkg/rcio/daemon"
	"github.com/robotalks/rcio.go/pkg/rcio/msgs"
)

var statusEvery = daemon.DefaultStatusEvery

func init() {
	env.SetupFlags()
	flag.IntVar(&statusEvery, "status-every", statusEvery, "Publish status every N RC input polls")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.Default()
	if err := conf.Resolve(flag.CommandLine); err != nil {
		log.Fatalln(err)
	}

	dev, closer, err := conf.NewDevice()
	if err != nil {
		log.Fatalln(err)
	}
	defer closer.Close()
	if err := dev.Init(); err != nil {
		log.Fatalln(err)
	}

	q, err := mqtt.NewQueueFromURL(conf.MQTTBrokerURL)
	if err != nil {
		log.Fatalln(err)
	}
	if err := q.Connect(); err != nil {
		log.Fatalf("connect %s: %v", conf.MQTTBrokerURL, err)
	}
	defer q.Close()

	topics := mqtt.ControllerTopics{Type: conf.Type, ID: conf.ID}
	d := daemon.New(dev, q, topics)
	d.StatusEvery = statusEvery

	loop := framework.NewLoop()
	loop.Interval = conf.PublishInterval
	loop.Handler = d
	loop.AddTicker(d)
	loop.AddRunnable(framework.NamedRun("commands", framework.RunFunc(func(ctx context.Context) error {
		sub := q.SubMessages(topics.Command(), func(topic string, msg msgs.SerializableMessage) {
			loop.PostMessage(msg)
		})
		<-ctx.Done()
		sub.Close()
		return ctx.Err()
	})))
	glog.Infof("serving %s", topics.Topic("#"))

	runner := framework.NewRunner().HandleSignals()
	if err := runner.Go(framework.NamedRun("loop", loop)).Wait(); err != nil {
		glog.Error(err)
	}
}

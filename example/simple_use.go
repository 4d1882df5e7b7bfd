package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/leandrodaf/notewatch/internal/logger"
	"github.com/leandrodaf/notewatch/sdk/contracts"
	"github.com/leandrodaf/notewatch/sdk/midi"
	"github.com/leandrodaf/notewatch/sdk/subscriber"
)

func main() {
	log := logger.NewStandardLogger()

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}

	device, err := midi.SelectDeviceByName(client, "Piano")
	if err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}
	fmt.Println("Listening on", device.Name)

	sub, err := subscriber.New(client, contracts.WithSubscriberLogger(log))
	if err != nil {
		log.Error("Failed to create subscriber", log.Field().Error("error", err))
		return
	}

	c, d, e, g := midi.NoteName(60), midi.NoteName(62), midi.NoteName(64), midi.NoteName(67)
	if _, err = sub.RegisterSequence([]contracts.Note{c, d, e}, contracts.Trigger(func() {
		fmt.Println("C major run!")
	})); err != nil {
		log.Error("Failed to register sequence", log.Field().Error("error", err))
		return
	}
	if _, err = sub.RegisterChord([]contracts.Note{c, e, g}, contracts.Trigger(func() {
		fmt.Println("C major chord held")
	})); err != nil {
		log.Error("Failed to register chord", log.Field().Error("error", err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Play something... Press Ctrl+C to exit.")
	if err := sub.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("Subscriber stopped", log.Field().Error("error", err))
	}
}

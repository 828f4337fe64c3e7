package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"gomori/internal/bots"
)

func main() {
	logLevel := flag.String("log-level", "info", "one of panic, fatal, error, warn, info, debug, trace")
	flag.Parse()

	bots.InitLogging(*logLevel)

	if err := bots.Run(bots.NewSearchBot()); err != nil {
		logrus.Fatal(err)
	}
}

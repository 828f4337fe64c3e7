package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"

	"github.com/sirupsen/logrus"

	"gomori/internal/bots"
)

func main() {
	seed := flag.Int64("seed", 0, "RNG seed (0 picks a random seed)")
	logLevel := flag.String("log-level", "info", "one of panic, fatal, error, warn, info, debug, trace")
	flag.Parse()

	bots.InitLogging(*logLevel)

	if *seed == 0 {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			logrus.Fatal(err)
		}
		*seed = int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	}

	if err := bots.Run(bots.NewRandomBot(*seed)); err != nil {
		logrus.Fatal(err)
	}
}

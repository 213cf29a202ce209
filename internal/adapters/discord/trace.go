package discord

import (
	"time"

	"github.com/sirupsen/logrus"
)

func step(log *logrus.Entry, label string) func() {
	start := time.Now()
	return func() { log.Debugf("[trace] %s = %s", label, time.Since(start)) }
}

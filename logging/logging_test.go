package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	cases := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{" WARN ", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			SetLevel(c.in)
			assert.Equal(t, c.want, Logger().GetLevel())
		})
	}
}

func TestForTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	For("mixer").Info("hello")
	assert.Contains(t, buf.String(), "component=mixer")
	assert.Contains(t, buf.String(), "hello")
}

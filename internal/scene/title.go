package scene

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/scale"
)

const timeLayout = "2006-01-02 15:04:05"

// Title builds the panel title for stamp, or "" when titles are hidden.
func Title(cfg *config.RenderConfig, stamp string) string {
	if cfg.Title.Hide {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "t = %s", stamp)
	if cfg.Quantity == "" {
		return b.String()
	}
	if e := cfg.Title.Energy; e != nil && *e != 0 {
		fmt.Fprintf(&b, "    E = %.2f MeV", *e)
	}
	b.WriteString("    " + cfg.Quantity)
	if cfg.Title.Unit != "" {
		fmt.Fprintf(&b, " [%s]", cfg.Title.Unit)
	}
	if cfg.DataScaleOrDefault() == scale.Log {
		b.WriteString(" (log-scaled)")
	}
	return b.String()
}

// TimeStamp labels a simulation time given in days. With a start date the
// label is the UTC date and time; otherwise it is the elapsed HH:MM:SS, with
// hours accumulating past 24.
func TimeStamp(tc config.TitleConfig, days float64) (string, error) {
	elapsed := time.Duration(math.Round((days + tc.OffsetDay) * 86400 * float64(time.Second)))
	if tc.TimeStart == "" {
		return formatElapsed(elapsed), nil
	}
	start, err := time.Parse(timeLayout, tc.TimeStart)
	if err != nil {
		return "", fmt.Errorf("time start %q: %w", tc.TimeStart, err)
	}
	return start.Add(elapsed).Format(timeLayout), nil
}

func formatElapsed(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign, d = "-", -d
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

package plot

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
)

const (
	laneWidth  = 960
	laneHeight = 120
	lanePad    = 12
	leftMargin = 56
)

type lane struct {
	title   string
	samples []float64
}

// WriteSVG renders input and output side by side, one lane per channel,
// and writes the image to path. Columns show the min/max sample range so
// long signals stay readable. Amplitudes are drawn against a fixed
// full-scale axis; samples beyond full scale are clipped to the lane.
func WriteSVG[S core.Sample](input, output *buffer.Buffer[S], sampleRateHz float64, path string) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, sampleRateHz)
	}
	if path == "" {
		return fmt.Errorf("%w: empty plot path", core.ErrValue)
	}

	var lanes []lane
	lanes = appendLanes(lanes, "in", input)
	lanes = appendLanes(lanes, "out", output)
	if len(lanes) == 0 {
		return fmt.Errorf("%w: nothing to plot", core.ErrValue)
	}

	width := leftMargin + laneWidth + lanePad
	height := lanePad + len(lanes)*(laneHeight+lanePad)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", width, height, width, height)
	sb.WriteString("<rect width=\"100%\" height=\"100%\" fill=\"#ffffff\"/>\n")

	for i, ln := range lanes {
		top := lanePad + i*(laneHeight+lanePad)
		mid := top + laneHeight/2
		fmt.Fprintf(&sb, "<text x=\"%d\" y=\"%d\" font-family=\"monospace\" font-size=\"12\" fill=\"#333333\">%s</text>\n", lanePad, mid+4, ln.title)
		fmt.Fprintf(&sb, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"none\" stroke=\"#cccccc\"/>\n", leftMargin, top, laneWidth, laneHeight)
		fmt.Fprintf(&sb, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"#cccccc\"/>\n", leftMargin, mid, leftMargin+laneWidth, mid)
		writeWave(&sb, ln.samples, top)
	}

	seconds := 0.0
	if len(lanes) > 0 {
		seconds = float64(len(lanes[0].samples)) / sampleRateHz
	}
	fmt.Fprintf(&sb, "<text x=\"%d\" y=\"%d\" font-family=\"monospace\" font-size=\"11\" fill=\"#777777\">%.4f s @ %.0f Hz</text>\n", leftMargin, height-2, seconds, sampleRateHz)
	sb.WriteString("</svg>\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("%w: %v", core.ErrIO, err)
	}

	return nil
}

func appendLanes[S core.Sample](lanes []lane, prefix string, buf *buffer.Buffer[S]) []lane {
	if buf == nil {
		return lanes
	}
	for channel := 0; channel < buf.NumChannels(); channel++ {
		src := buf.Channel(channel)
		samples := make([]float64, len(src))
		for i, v := range src {
			samples[i] = float64(v)
		}
		lanes = append(lanes, lane{
			title:   fmt.Sprintf("%s %d", prefix, channel),
			samples: samples,
		})
	}

	return lanes
}

// writeWave emits one path whose segments are the min/max vertical spans
// of each pixel column.
func writeWave(sb *strings.Builder, samples []float64, top int) {
	if len(samples) == 0 {
		return
	}

	columns := laneWidth
	if len(samples) < columns {
		columns = len(samples)
	}

	var d strings.Builder
	for col := 0; col < columns; col++ {
		from := col * len(samples) / columns
		to := (col + 1) * len(samples) / columns
		if to <= from {
			to = from + 1
		}

		lo, hi := samples[from], samples[from]
		for _, v := range samples[from+1 : to] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		x := leftMargin + col*laneWidth/columns
		fmt.Fprintf(&d, "M%d %.1f V%.1f ", x, sampleToY(hi, top), sampleToY(lo, top))
	}

	fmt.Fprintf(sb, "<path d=\"%s\" stroke=\"#1f6fb2\" stroke-width=\"1\" fill=\"none\"/>\n", strings.TrimSpace(d.String()))
}

func sampleToY(v float64, top int) float64 {
	v = core.Clamp(v, -1, 1)
	mid := float64(top) + laneHeight/2

	return mid - v*(laneHeight/2-1)
}

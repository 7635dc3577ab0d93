package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-audiotest/config"
	"github.com/cwbudde/algo-audiotest/dsp/buffer"
	"github.com/cwbudde/algo-audiotest/dsp/core"
	"github.com/cwbudde/algo-audiotest/dsp/effect"
	"github.com/cwbudde/algo-audiotest/dsp/sig"
	"github.com/cwbudde/algo-audiotest/match"
	"github.com/cwbudde/algo-audiotest/plot"
	"github.com/cwbudde/algo-audiotest/wavio"
)

const (
	defaultSampleRate = 44100.0
	defaultBlockSize  = 1024
	defaultDuration   = 0.1

	maxNumChannels = 128
)

type paramValue struct {
	param int
	value float64
}

type check[S core.Sample] struct {
	matcher    match.Matcher[S]
	assert     bool
	shouldPass bool
	skip       bool
}

// Test renders an input signal through an effect and evaluates checks
// against the output. Configure it with the With* methods and run it with
// Process. Configuration errors are deferred: the first one is remembered
// and returned by Process, so call chains stay unconditional.
type Test[S core.Sample] struct {
	fx     effect.Effect[S]
	signal sig.Signal[S]
	cfg    config.Config

	sampleRate float64
	blockSize  int
	duration   float64
	numIn      int
	numOut     int
	label      string
	values     []paramValue

	perBlock   []*check[S]
	fullSignal []*check[S]

	saveOutputPath   string
	saveOutputMode   Save
	saveOutputFormat wavio.Format
	savePlotPath     string
	savePlotMode     Save

	err error
}

// ProcessAudioWith starts a test around the effect under test. Defaults:
// 44100 Hz, blocks of 1024 frames, one input and one output channel,
// 0.1 seconds of audio.
func ProcessAudioWith[S core.Sample](fx effect.Effect[S]) *Test[S] {
	t := &Test[S]{
		fx:         fx,
		cfg:        config.Default(),
		sampleRate: defaultSampleRate,
		blockSize:  defaultBlockSize,
		duration:   defaultDuration,
		numIn:      1,
		numOut:     1,
	}
	if fx == nil {
		t.fail(fmt.Errorf("%w: no effect under test", core.ErrState))
	}

	return t
}

func (t *Test[S]) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

// WithConfig replaces the engine configuration used for path resolution
// and report formatting.
func (t *Test[S]) WithConfig(cfg config.Config) *Test[S] {
	t.cfg = cfg
	return t
}

// WithLabel tags failure reports from this test.
func (t *Test[S]) WithLabel(text string) *Test[S] {
	t.label = text
	return t
}

// WithSampleRate sets the render sample rate in Hz.
func (t *Test[S]) WithSampleRate(rateHz float64) *Test[S] {
	if rateHz <= 0 {
		t.fail(fmt.Errorf("%w: sample rate %v Hz", core.ErrValue, rateHz))
		return t
	}
	if t.fx != nil && !t.fx.SupportsSampleRate(rateHz) {
		t.fail(fmt.Errorf("%w: %s does not support %v Hz", core.ErrSampleRate, t.fx, rateHz))
		return t
	}
	t.sampleRate = rateHz

	return t
}

// WithBlockSize sets the maximum frames rendered per block.
func (t *Test[S]) WithBlockSize(frames int) *Test[S] {
	if frames <= 0 {
		t.fail(fmt.Errorf("%w: block size %d", core.ErrSize, frames))
		return t
	}
	t.blockSize = frames

	return t
}

// WithDuration sets the rendered length in seconds.
func (t *Test[S]) WithDuration(seconds float64) *Test[S] {
	if seconds < 0 {
		t.fail(fmt.Errorf("%w: duration %v s", core.ErrValue, seconds))
		return t
	}
	t.duration = seconds

	return t
}

// WithValue sets an effect parameter before processing starts.
func (t *Test[S]) WithValue(param int, value float64) *Test[S] {
	t.values = append(t.values, paramValue{param: param, value: value})
	return t
}

// WithInputSignal sets the signal feeding the effect. The test renders
// its own copy, so the caller's signal keeps its state.
func (t *Test[S]) WithInputSignal(s sig.Signal[S]) *Test[S] {
	if s == nil {
		t.fail(fmt.Errorf("%w: nil input signal", core.ErrState))
		return t
	}
	t.signal = s.Clone()

	return t
}

// WithInputChannels sets the number of input channels.
func (t *Test[S]) WithInputChannels(n int) *Test[S] {
	if n <= 0 || n > maxNumChannels {
		t.fail(fmt.Errorf("%w: %d input channels", core.ErrSize, n))
		return t
	}
	t.numIn = n

	return t
}

// WithOutputChannels sets the number of output channels.
func (t *Test[S]) WithOutputChannels(n int) *Test[S] {
	if n <= 0 || n > maxNumChannels {
		t.fail(fmt.Errorf("%w: %d output channels", core.ErrSize, n))
		return t
	}
	t.numOut = n

	return t
}

func (t *Test[S]) WithMonoInput() *Test[S]    { return t.WithInputChannels(1) }
func (t *Test[S]) WithStereoInput() *Test[S]  { return t.WithInputChannels(2) }
func (t *Test[S]) WithMonoOutput() *Test[S]   { return t.WithOutputChannels(1) }
func (t *Test[S]) WithStereoOutput() *Test[S] { return t.WithOutputChannels(2) }

// InMono processes one channel in, one channel out.
func (t *Test[S]) InMono() *Test[S] { return t.WithMonoInput().WithMonoOutput() }

// InStereo processes two channels in, two channels out.
func (t *Test[S]) InStereo() *Test[S] { return t.WithStereoInput().WithStereoOutput() }

// ExpectTrue registers a check that must pass; a failure is collected in
// Result.Failures and the run continues.
func (t *Test[S]) ExpectTrue(m match.Matcher[S]) *Test[S] { return t.addCheck(m, false, true) }

// ExpectFalse registers a check that must not pass.
func (t *Test[S]) ExpectFalse(m match.Matcher[S]) *Test[S] { return t.addCheck(m, false, false) }

// AssertTrue registers a check that must pass; a failure aborts the run
// with an AssertionError.
func (t *Test[S]) AssertTrue(m match.Matcher[S]) *Test[S] { return t.addCheck(m, true, true) }

// AssertFalse registers a check that must not pass; a pass aborts the run
// with an AssertionError.
func (t *Test[S]) AssertFalse(m match.Matcher[S]) *Test[S] { return t.addCheck(m, true, false) }

// addCheck groups a check by evaluation granularity. Negated checks are
// forced onto the whole signal: "never passes" cannot be decided from a
// single block.
func (t *Test[S]) addCheck(m match.Matcher[S], assert, shouldPass bool) *Test[S] {
	if m == nil {
		t.fail(fmt.Errorf("%w: nil matcher", core.ErrState))
		return t
	}

	c := &check[S]{matcher: m.Clone(), assert: assert, shouldPass: shouldPass}
	if shouldPass && c.matcher.PerBlock() {
		t.perBlock = append(t.perBlock, c)
	} else {
		t.fullSignal = append(t.fullSignal, c)
	}

	return t
}

// SaveOutputTo writes the rendered output as a WAV file after the run,
// subject to the save policy. Relative paths resolve against the
// configured data root.
func (t *Test[S]) SaveOutputTo(path string, mode Save, format wavio.Format) *Test[S] {
	t.saveOutputPath = path
	t.saveOutputMode = mode
	t.saveOutputFormat = format

	return t
}

// SavePlotTo writes a waveform SVG of input versus output after the run,
// subject to the save policy.
func (t *Test[S]) SavePlotTo(path string, mode Save) *Test[S] {
	t.savePlotPath = path
	t.savePlotMode = mode

	return t
}

// Process renders the configured duration block by block and evaluates
// all registered checks. It returns the collected Result, or an error for
// configuration problems and assert-level failures.
func (t *Test[S]) Process() (*Result[S], error) {
	if t.err != nil {
		return nil, t.err
	}

	durationFrames := core.DurationToFrames(t.duration, t.sampleRate)
	if durationFrames == 0 {
		return nil, fmt.Errorf("%w: nothing to process", core.ErrSize)
	}
	if t.signal == nil {
		return nil, fmt.Errorf("%w: no input signal", core.ErrState)
	}
	if !t.fx.SupportsChannelLayout(t.numIn, t.numOut) {
		return nil, fmt.Errorf("%w: %s cannot process %d in, %d out", core.ErrChannelLayout, t.fx, t.numIn, t.numOut)
	}

	if err := t.prepareChecks(t.perBlock, t.blockSize); err != nil {
		return nil, err
	}
	if err := t.prepareChecks(t.fullSignal, durationFrames); err != nil {
		return nil, err
	}

	effect.ResetWithAutomation(t.fx)
	if err := effect.PrepareWithAutomation(t.fx, t.sampleRate, t.numIn, t.numOut, t.blockSize); err != nil {
		return nil, err
	}
	for _, v := range t.values {
		t.fx.SetValue(v.param, v.value)
	}

	if err := t.signal.Prepare(t.sampleRate, t.numIn, t.blockSize); err != nil {
		return nil, err
	}
	t.signal.Reset()

	result := &Result[S]{
		Input:  buffer.New[S](t.numIn, 0),
		Output: buffer.New[S](t.numOut, 0),
		Effect: t.fx,
	}
	inPool := buffer.NewPool[S](t.numIn)
	outPool := buffer.NewPool[S](t.numOut)

	for offset := 0; offset < durationFrames; {
		frames := min(t.blockSize, durationFrames-offset)
		inBlock := inPool.Get(frames)
		outBlock := outPool.Get(frames)

		err := t.processBlock(inBlock, outBlock, offset, result)
		inPool.Put(inBlock)
		outPool.Put(outBlock)
		if err != nil {
			return nil, err
		}
		offset += frames
	}

	if err := t.runChecks(t.fullSignal, result.Output, 0, result); err != nil {
		return nil, err
	}

	anyFailed := len(result.Failures) > 0
	if t.saveOutputMode.shouldWrite(anyFailed) {
		path := t.cfg.ResolvePath(t.saveOutputPath)
		if err := wavio.Encode(result.Output, path, t.sampleRate, t.saveOutputFormat); err != nil {
			return result, err
		}
	}
	if t.savePlotMode.shouldWrite(anyFailed) {
		path := t.cfg.ResolvePath(t.savePlotPath)
		if err := plot.WriteSVG(result.Input, result.Output, t.sampleRate, path); err != nil {
			return result, err
		}
	}

	return result, nil
}

// processBlock renders one input block, pushes it through the effect
// under test, runs the per-block checks and accumulates the full-signal
// buffers. The block buffers go back to their pool afterwards, so nothing
// in here may retain them.
func (t *Test[S]) processBlock(inBlock, outBlock *buffer.Buffer[S], offset int, result *Result[S]) error {
	if err := t.signal.RenderNextBlock(inBlock); err != nil {
		return err
	}
	if err := effect.ProcessWithAutomation(t.fx, inBlock, outBlock); err != nil {
		return err
	}
	if err := t.runChecks(t.perBlock, outBlock, offset, result); err != nil {
		return err
	}

	if err := result.Input.Append(inBlock); err != nil {
		return err
	}

	return result.Output.Append(outBlock)
}

func (t *Test[S]) prepareChecks(checks []*check[S], maxFrames int) error {
	for _, c := range checks {
		if err := c.matcher.Prepare(t.sampleRate, t.numOut, maxFrames); err != nil {
			return fmt.Errorf("check %s: %w", c.matcher, err)
		}
		c.matcher.Reset()
		c.skip = false
	}

	return nil
}

// runChecks evaluates each live check against the observed audio. A check
// that fails is skipped for the rest of the run so one broken block does
// not flood the report.
func (t *Test[S]) runChecks(checks []*check[S], observed *buffer.Buffer[S], offsetFrames int, result *Result[S]) error {
	for _, c := range checks {
		if c.skip {
			continue
		}
		if c.matcher.Match(observed) == c.shouldPass {
			continue
		}
		c.skip = true

		msg := t.failureMessage(c, observed, offsetFrames)
		if c.assert {
			return &AssertionError{Message: msg}
		}
		result.Failures = append(result.Failures, msg)
	}

	return nil
}

func (t *Test[S]) failureMessage(c *check[S], observed *buffer.Buffer[S], offsetFrames int) string {
	var sb strings.Builder
	sb.WriteString(checkName(c.assert, c.shouldPass))
	sb.WriteString(" failed")
	if t.label != "" {
		fmt.Fprintf(&sb, " at %q", t.label)
	}
	fmt.Fprintf(&sb, "\nCondition: %s", c.matcher)

	if !c.shouldPass {
		return sb.String()
	}

	d := c.matcher.FailureDetails()
	timestamp := float64(offsetFrames+d.Frame) / t.sampleRate
	value := sampleAt(observed, d.Channel, d.Frame)
	fmt.Fprintf(&sb, "\nChannel: %d", d.Channel)
	fmt.Fprintf(&sb, "\nFrame: %d", d.Frame)
	fmt.Fprintf(&sb, "\nTimestamp: %s seconds", t.cfg.FormatSec(timestamp))
	fmt.Fprintf(&sb, "\nSample value: %s (%s dB)", t.cfg.FormatLin(value), t.cfg.FormatDB(core.LinearToDB(math.Abs(value))))
	if d.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(d.Description)
	}

	return sb.String()
}

func checkName(assert, shouldPass bool) string {
	switch {
	case assert && shouldPass:
		return "AssertTrue()"
	case assert:
		return "AssertFalse()"
	case shouldPass:
		return "ExpectTrue()"
	}

	return "ExpectFalse()"
}

func sampleAt[S core.Sample](observed *buffer.Buffer[S], channel, frame int) float64 {
	if channel < 0 || channel >= observed.NumChannels() {
		return 0
	}
	samples := observed.Channel(channel)
	if frame < 0 || frame >= len(samples) {
		return 0
	}

	return float64(samples[frame])
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"visub/internal/app"
	"visub/internal/fetch"
	"visub/internal/gpu"
	"visub/internal/logger"
	"visub/internal/media"
	"visub/internal/style"
	"visub/internal/transcriber"
)

type generateOptions struct {
	model            string
	language         string
	device           string
	outputDir        string
	numWords         int
	fullSentence     bool
	outputSRT        bool
	srtOnly          bool
	burnIn           bool
	speakerDetection bool
	highlight        bool
	preset           string
	hfToken          string
	jobs             int
	verbose          bool
}

func defaultGenerateOptions() *generateOptions {
	return &generateOptions{
		model:            transcriber.DefaultModel,
		language:         "auto",
		outputDir:        ".",
		numWords:         4,
		burnIn:           true,
		speakerDetection: true,
		highlight:        true,
		jobs:             1,
	}
}

func addGenerateFlags(cmd *cobra.Command, o *generateOptions) {
	cmd.Flags().StringVar(&o.model, "model", o.model, "name of the WhisperX model to use")
	cmd.Flags().StringVar(&o.language, "language", o.language, "origin language of the video (auto = detect)")
	cmd.Flags().StringVar(&o.device, "device", "", "inference device, cuda or cpu (default: auto-detect)")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", o.outputDir, "directory to save the outputs")
	cmd.Flags().IntVarP(&o.numWords, "num-words", "n", o.numWords, "maximum number of words to show at once")
	cmd.Flags().BoolVar(&o.fullSentence, "full-sentence", false, "group words by sentence boundaries instead of word count")
	cmd.Flags().BoolVar(&o.outputSRT, "output-srt", false, "write a plain SRT file alongside the ASS track")
	cmd.Flags().BoolVar(&o.srtOnly, "srt-only", false, "only generate subtitle files, skip the subtitled video")
	cmd.Flags().BoolVar(&o.burnIn, "burn-in", o.burnIn, "render subtitles into a new video file")
	cmd.Flags().BoolVar(&o.speakerDetection, "speaker-detection", o.speakerDetection, "style subtitles per detected speaker")
	cmd.Flags().BoolVar(&o.highlight, "highlight", o.highlight, "highlight the word currently being spoken")
	cmd.Flags().StringVar(&o.preset, "preset", "", "apply a named style preset (see: visub presets)")
	cmd.Flags().StringVar(&o.hfToken, "hf-token", "", "Hugging Face token for speaker diarization (default: $HF_TOKEN)")
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", o.jobs, "number of videos to process in parallel")
}

func (o *generateOptions) validate() error {
	if !transcriber.IsValidModel(o.model) {
		return fmt.Errorf("unknown model %q", o.model)
	}
	if !transcriber.IsValidLanguage(o.language) {
		return fmt.Errorf("unknown language %q", o.language)
	}
	if !o.fullSentence && o.numWords < 1 {
		return fmt.Errorf("num-words must be at least 1")
	}
	switch o.device {
	case "", "cpu", "cuda":
	default:
		return fmt.Errorf("unknown device %q, expected cpu or cuda", o.device)
	}
	if o.preset != "" {
		if _, ok := style.PresetByName(o.preset); !ok {
			return fmt.Errorf("unknown preset %q (see: visub presets)", o.preset)
		}
	}
	if o.jobs < 1 {
		return fmt.Errorf("jobs must be at least 1")
	}
	return nil
}

// subtitleConfig translates the flags into a subtitle config. A preset is
// installed as the first (and only) configured speaker style, which makes it
// the look for every subtitle regardless of who is speaking.
func (o *generateOptions) subtitleConfig() style.Config {
	cfg := style.DefaultConfig()
	cfg.MaxWords = style.WordLimit(o.numWords)
	if o.fullSentence {
		cfg.MaxWords = style.FullSentence
	}
	cfg.OutputSRT = o.outputSRT || o.srtOnly
	cfg.EnableSpeakerDetection = o.speakerDetection
	cfg.EnableWordHighlighting = o.highlight

	if o.preset != "" {
		preset, _ := style.PresetByName(o.preset)
		cfg.Speakers = []style.SpeakerConfig{{SpeakerID: "SPEAKER_00", Style: preset.Style}}
	}

	return cfg
}

// transcriberOptions assembles the transcription settings, probing for a GPU
// when no device was requested explicitly.
func (o *generateOptions) transcriberOptions(log *zap.Logger) transcriber.Options {
	device := o.device
	if device == "" {
		device = gpu.NewDetectorWithLogger(log).Device()
	}

	token := o.hfToken
	if token == "" {
		token = os.Getenv("HF_TOKEN")
	}

	return transcriber.Options{
		Model:    o.model,
		Language: o.language,
		Device:   device,
		HFToken:  token,
	}
}

func runGenerate(ctx context.Context, o *generateOptions, videos []string) error {
	if err := o.validate(); err != nil {
		return err
	}

	log := logger.NewCLILogger(o.verbose)
	defer log.Sync()

	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", o.outputDir, err)
	}

	pipeline := app.NewPipelineWithLogger(
		transcriber.NewEngineWithLogger(log),
		media.NewProcessorWithLogger(log),
		fetch.NewDownloaderWithLogger(log),
		log,
	)

	opts := app.Options{
		Transcription: o.transcriberOptions(log),
		Subtitles:     o.subtitleConfig(),
		OutputDir:     o.outputDir,
		SRTOnly:       o.srtOnly,
		BurnIn:        o.burnIn,
	}

	// Each video succeeds or fails on its own; one failure must not cancel
	// the others, so errors are collected instead of returned to the group.
	type result struct {
		input   string
		outputs *app.Outputs
		err     error
	}
	results := make([]result, len(videos))

	g := new(errgroup.Group)
	g.SetLimit(o.jobs)
	for i, video := range videos {
		i, video := i, video
		g.Go(func() error {
			out, err := pipeline.Process(ctx, video, opts)
			results[i] = result{input: video, outputs: out, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			log.Error("processing failed", zap.String("video", r.input), zap.Error(r.err))
			continue
		}
		for _, path := range []string{r.outputs.ASSPath, r.outputs.SRTPath, r.outputs.VideoPath} {
			if path != "" {
				fmt.Println(path)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d videos failed", failed, len(videos))
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/storygen-hq/storygen/internal/config"
	"github.com/storygen-hq/storygen/internal/generate"
	"github.com/storygen-hq/storygen/internal/llm"
	"github.com/storygen-hq/storygen/internal/prompt"
	"github.com/storygen-hq/storygen/internal/usage"
	"github.com/storygen-hq/storygen/pkg/model"
)

// storyFile is the YAML shape of a user story on disk.
type storyFile struct {
	Title              string         `yaml:"title"`
	Description        string         `yaml:"description"`
	AcceptanceCriteria string         `yaml:"acceptance_criteria"`
	Domain             string         `yaml:"domain"`
	Complexity         string         `yaml:"complexity"`
	GenerationType     string         `yaml:"generation_type"`
	Personas           []string       `yaml:"personas"`
	BusinessRules      []string       `yaml:"business_rules"`
	AdditionalContext  map[string]any `yaml:"additional_context"`
	MaxTestCases       int            `yaml:"max_test_cases"`
	QualityThreshold   float64        `yaml:"quality_threshold"`
}

func generateCmd() *cobra.Command {
	var (
		storyPath     string
		templatesPath string
		outputPath    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases for a user story",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := buildGenerator(templatesPath)
			if err != nil {
				return err
			}

			req, err := loadStory(storyPath)
			if err != nil {
				return err
			}

			result := gen.Generate(cmd.Context(), req)
			if result.ErrorMessage != "" {
				return fmt.Errorf("generation failed: %s", result.ErrorMessage)
			}

			return writeResult(outputPath, result)
		},
	}

	cmd.Flags().StringVarP(&storyPath, "story", "f", "", "Path to a user story YAML file")
	cmd.Flags().StringVarP(&templatesPath, "templates", "t", "", "Optional prompt template overlay YAML")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.MarkFlagRequired("story")

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the configured completion provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := buildGenerator("")
			if err != nil {
				return err
			}

			status := gen.HealthCheck(cmd.Context())
			out, _ := json.MarshalIndent(status, "", "  ")
			fmt.Println(string(out))

			if status.Status != "healthy" {
				return fmt.Errorf("provider unhealthy: %s", status.Error)
			}
			return nil
		},
	}
}

func usageCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show token usage and cost statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := buildGenerator("")
			if err != nil {
				return err
			}

			out, _ := json.MarshalIndent(gen.UsageReport(days), "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Trailing period to report on")

	return cmd
}

func buildGenerator(templatesPath string) (*generate.Generator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, llm.OpenAIOptions{
		BaseURL:           cfg.OpenAI.BaseURL,
		Timeout:           cfg.OpenAI.RequestTimeout,
		RequestsPerSecond: cfg.OpenAI.RequestsPerSecond,
	})

	prompts, err := prompt.NewManager()
	if err != nil {
		return nil, err
	}
	if templatesPath != "" {
		if err := prompts.LoadFile(templatesPath); err != nil {
			return nil, fmt.Errorf("failed to load templates: %w", err)
		}
	}

	return generate.New(client, prompts, usage.NewTracker(nil), generate.Options{
		MaxTokens:           cfg.OpenAI.MaxTokens,
		Temperature:         cfg.OpenAI.Temperature,
		DailyCostLimitUSD:   cfg.DailyCostLimitUSD,
		MonthlyCostLimitUSD: cfg.MonthlyCostLimitUSD,
	}), nil
}

func loadStory(path string) (generate.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generate.Request{}, fmt.Errorf("failed to read story file: %w", err)
	}

	var story storyFile
	if err := yaml.Unmarshal(data, &story); err != nil {
		return generate.Request{}, fmt.Errorf("failed to parse story file: %w", err)
	}

	return generate.Request{
		Title:              story.Title,
		Description:        story.Description,
		AcceptanceCriteria: story.AcceptanceCriteria,
		Domain:             model.Domain(story.Domain),
		Complexity:         model.Complexity(story.Complexity),
		GenerationType:     model.GenerationType(story.GenerationType),
		Personas:           story.Personas,
		BusinessRules:      story.BusinessRules,
		AdditionalContext:  story.AdditionalContext,
		MaxTestCases:       story.MaxTestCases,
		QualityThreshold:   story.QualityThreshold,
	}, nil
}

func writeResult(path string, result *generate.Result) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if path == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(path, out, 0o644)
}

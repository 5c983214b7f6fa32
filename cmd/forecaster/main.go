package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"forecast-agent/internal/di"
	"forecast-agent/internal/domain/entity"
	"forecast-agent/internal/infrastructure/env"

	"github.com/fatih/color"
)

func main() {
	envService := env.NewEnvService()

	apiKey := envService.MustGet("OPENROUTER_API_KEY")
	model := envService.MustGet("OPENROUTER_MODEL_NAME")

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("\nQuestion title:")
	title, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal("Failed to read input: ", err)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		log.Fatal("Question title must not be empty")
	}

	fmt.Println("Context / info dump / resolution criteria (finish with an empty line):")
	questionContext := readMultiline(reader)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	container, err := di.NewContainer(di.Config{
		OpenRouterAPIKey: apiKey,
		OpenRouterModel:  model,
		OpenRouterURL:    envService.Get("OPENROUTER_BASE_URL"),
		Verbose:          envService.GetBool("VERBOSE", false),
	})
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Forecast started", "title", title)
	fmt.Println("\nRunning forecasting pipeline...")

	result, err := container.Pipeline.Run(ctx, entity.Question{
		Title:   title,
		Context: questionContext,
	})
	if err != nil {
		container.Logger.Error("Forecast failed", "error", err)
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}

	container.Logger.Info("Forecast completed", "type", result.QuestionType)
	printResult(result)
}

func readMultiline(reader *bufio.Reader) string {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" || err != nil {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func printResult(result *entity.ForecastResult) {
	cyan := color.New(color.FgCyan, color.Bold)
	blue := color.New(color.FgBlue)
	green := color.New(color.FgGreen, color.Bold)

	cyan.Printf("\nQuestion type: %s\n", result.QuestionType)

	cyan.Println("\nForecasts:")
	for i, forecast := range result.Forecasts {
		blue.Printf("Forecaster %d: ", i+1)
		fmt.Println(forecast)
	}

	cyan.Println("\nJudge feedback:")
	for i, feedback := range result.JudgeFeedback {
		blue.Printf("Judge %d: ", i+1)
		fmt.Println(feedback)
	}

	green.Println("\nSupreme Judge Decision:")
	fmt.Println(result.SupremeDecision)
}

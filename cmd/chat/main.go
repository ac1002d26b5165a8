package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pomelo/internal/util"

	"pomelo/pkg/ai"
	oai "pomelo/pkg/ai/ollama"
	gai "pomelo/pkg/ai/openai"
	"pomelo/pkg/entity"
	"pomelo/pkg/kg"
	"pomelo/pkg/logger"
	"pomelo/pkg/logger/console"
	"pomelo/pkg/pipeline"
	"pomelo/pkg/rag"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

var sampleQuestions = []string{
	"What companies did Elon Musk found?",
	"Who leads OpenAI?",
	"What is the relationship between Microsoft and OpenAI?",
	"Tell me about NVIDIA",
	"Who founded DeepMind?",
}

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	graph, err := kg.BuildGraph(loadSeed())
	if err != nil {
		logger.Fatal("Failed to build knowledge graph", "err", err)
	}

	catalog := entity.NewCatalog(graph, entity.DefaultAliases)
	builder := rag.NewBuilder(rag.NewBuilderParams{
		TokenEncoder:     util.GetEnv("CONTEXT_TOKEN_ENCODER"),
		MaxContextTokens: util.GetEnvInt("CONTEXT_MAX_TOKENS", 0),
	})

	p, err := pipeline.NewPipeline(pipeline.NewPipelineParams{
		Graph:   graph,
		Catalog: catalog,
		Builder: builder,

		AIClient: newAnswerClient(),

		MaxDepth:        util.GetEnvInt("MAX_DEPTH", 1),
		GenerateTimeout: time.Duration(util.GetEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxRetries:      util.GetEnvInt("AI_MAX_RETRIES", 1),
	})
	if err != nil {
		logger.Fatal("Failed to create pipeline", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner()
	printStats(graph)
	printSamples()
	fmt.Println(dimStyle.Render("Type 'quit' or 'exit' to stop. Type 'help' for sample questions."))
	fmt.Println()

	verbose := util.GetEnvBool("VERBOSE", true)
	repl(ctx, p, graph, verbose)
}

func repl(ctx context.Context, p *pipeline.Pipeline, graph *kg.Graph, verbose bool) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(promptStyle.Render("ask>") + " ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		if ctx.Err() != nil {
			return
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			fmt.Println(dimStyle.Render("Goodbye!"))
			return
		case "help":
			printSamples()
			continue
		case "stats":
			printStats(graph)
			continue
		}

		state := p.Run(ctx, question)

		if verbose {
			fmt.Println()
			for _, line := range state.TraceLines() {
				fmt.Println(dimStyle.Render("  " + line))
			}
		}

		fmt.Println()
		fmt.Println(answerStyle.Render(state.Answer))
		fmt.Println()
	}
}

func printBanner() {
	fmt.Println()
	fmt.Println(titleStyle.Render("pomelo - graph-grounded question answering"))
	fmt.Println()
}

func printStats(graph *kg.Graph) {
	stats := graph.Stats()
	fmt.Println("Knowledge graph:")
	fmt.Printf("  nodes: %d (people: %d, organizations: %d)\n", stats.Nodes, stats.People, stats.Organizations)
	fmt.Printf("  edges: %d\n", stats.Edges)
	fmt.Println()
}

func printSamples() {
	fmt.Println("Sample questions:")
	for _, q := range sampleQuestions {
		fmt.Println("  - " + q)
	}
	fmt.Println()
}

func loadSeed() kg.Seed {
	if path := util.GetEnv("GRAPH_SEED"); path != "" {
		seed, err := kg.LoadSeedFile(path)
		if err != nil {
			logger.Fatal("Failed to load seed file", "path", path, "err", err)
		}
		return seed
	}

	seed, err := kg.DefaultSeed()
	if err != nil {
		logger.Fatal("Failed to load embedded seed data", "err", err)
	}
	return seed
}

func newAnswerClient() ai.AnswerClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewAnswerOllamaClient(oai.NewAnswerOllamaClientParams{
			ChatModel: util.GetEnvString("AI_CHAT_MODEL", "llama3.1"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 15)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		return client
	default:
		key := util.GetEnv("AI_CHAT_KEY")
		if key == "" {
			logger.Warn("AI_CHAT_KEY not set, generation stage disabled")
			return nil
		}
		return gai.NewAnswerOpenAIClient(gai.NewAnswerOpenAIClientParams{
			ChatModel: util.GetEnvString("AI_CHAT_MODEL", "llama-3.1-8b-instant"),
			ChatURL:   util.GetEnv("AI_CHAT_URL"),
			ChatKey:   key,
		})
	}
}

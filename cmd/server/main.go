package main

import (
	"time"

	"pomelo/internal/server"
	mid "pomelo/internal/server/middleware"
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
)

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
	stats := graph.Stats()
	logger.Info("Knowledge graph ready", "nodes", stats.Nodes, "edges", stats.Edges)

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

		Tracer: pipeline.LoggerTracer{},
	})
	if err != nil {
		logger.Fatal("Failed to create pipeline", "err", err)
	}

	server.Init(&mid.App{
		Graph:    graph,
		Pipeline: p,
	})
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

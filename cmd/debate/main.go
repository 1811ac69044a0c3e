package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"DebateRehearsal/pkg/config"
	"DebateRehearsal/pkg/debate"
	"DebateRehearsal/pkg/llm"
	"DebateRehearsal/pkg/logger"
	"DebateRehearsal/pkg/transcript"
	"DebateRehearsal/pkg/tui"
	"DebateRehearsal/pkg/viz"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	topic := flag.String("topic", "", "Debate topic (overrides config)")
	rounds := flag.Int("rounds", 0, "Number of rounds (overrides config)")
	variant := flag.String("variant", "both", "Which debate to run: baseline, enhanced, or both")
	showTUI := flag.Bool("tui", false, "Open the transcript viewer after each debate")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("DebateRehearsal v%s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *topic != "" {
		cfg.Topic = *topic
	}
	if *rounds > 0 {
		cfg.Rounds = *rounds
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// First SIGINT/SIGTERM cancels the debate, second force-exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		<-sigCh
		os.Exit(1)
	}()

	client := llm.NewClientWithProvider(cfg.APIBaseURL, cfg.APIKey, cfg.Model, cfg.Provider)
	if cfg.CacheSize != 0 {
		client.SetCacheSize(cfg.CacheSize)
	}

	logger.Infof("warming up %s (%s)...", cfg.Model, client.ProviderName())
	if err := client.Warmup(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}

	genOpts := llm.Options{
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
		ContextWindow: cfg.ContextWindow,
		RepeatPenalty: cfg.RepeatPenalty,
	}

	if *variant == "both" || *variant == "baseline" {
		pro := mustAgent(newBaseline(cfg, client, genOpts, "PRO", cfg.ProKnowledge))
		con := mustAgent(newBaseline(cfg, client, genOpts, "CON", cfg.ConKnowledge))
		runDebate(ctx, cfg, pro, con, "baseline", *showTUI)
	}

	if *variant == "both" || *variant == "enhanced" {
		pro := mustAgent(newEnhanced(cfg, client, genOpts, "PRO+", cfg.ProKnowledge))
		con := mustAgent(newEnhanced(cfg, client, genOpts, "CON+", cfg.ConKnowledge))
		runDebate(ctx, cfg, pro, con, "enhanced", *showTUI)
	}
}

func agentConfig(cfg *config.Config, position string, knowledge []string, genOpts llm.Options) debate.Config {
	return debate.Config{
		Position:      position,
		KnowledgeBase: knowledge,
		MaxDepth:      cfg.MaxDepth,
		MaxBreadth:    cfg.MaxBreadth,
		SampleSize:    cfg.SampleSize,
		MaxSentences:  cfg.MaxSentences,
		GenOptions:    genOpts,
	}
}

func agentRand(cfg *config.Config) []debate.Option {
	if cfg.Seed == 0 {
		return nil
	}
	return []debate.Option{debate.WithRand(rand.New(rand.NewSource(cfg.Seed)))}
}

func newBaseline(cfg *config.Config, client *llm.Client, genOpts llm.Options, position string, knowledge []string) (debate.Agent, error) {
	return debate.NewDebater(agentConfig(cfg, position, knowledge, genOpts), client, agentRand(cfg)...)
}

func newEnhanced(cfg *config.Config, client *llm.Client, genOpts llm.Options, position string, knowledge []string) (debate.Agent, error) {
	return debate.NewTheoryOfMindDebater(agentConfig(cfg, position, knowledge, genOpts), client, agentRand(cfg)...)
}

func mustAgent(a debate.Agent, err error) debate.Agent {
	if err != nil {
		log.Fatalf("❌ Failed to create agent: %v", err)
	}
	return a
}

// runDebate alternates the two agents for the configured number of rounds,
// then produces end-of-debate diagnostics: each agent's final rehearsal path
// and an optional tree diagram.
func runDebate(ctx context.Context, cfg *config.Config, agent1, agent2 debate.Agent, variant string, showTUI bool) {
	logger.Infof("--- %s DEBATE ---", variant)
	logger.Infof("TOPIC: %s", cfg.Topic)

	tr := transcript.New(cfg.Topic, variant)
	currentStatement := cfg.Topic
	var lastResponse1, lastResponse2 string

	for round := 1; round <= cfg.Rounds; round++ {
		if ctx.Err() != nil {
			logger.Warnf("debate cancelled in round %d", round)
			break
		}
		logger.Infof("ROUND %d", round)

		response1, err := agent1.GenerateResponse(ctx, currentStatement)
		if err != nil {
			logger.Warnf("%s forfeits the round: %v", agent1.Position(), err)
			break
		}
		logger.Infof("%s: %s", agent1.Position(), response1)
		tr.Add(agent1.Position(), round, response1)
		currentStatement = response1
		lastResponse1 = response1

		response2, err := agent2.GenerateResponse(ctx, currentStatement)
		if err != nil {
			logger.Warnf("%s forfeits the round: %v", agent2.Position(), err)
			break
		}
		logger.Infof("%s: %s", agent2.Position(), response2)
		tr.Add(agent2.Position(), round, response2)
		currentStatement = response2
		lastResponse2 = response2
	}

	traces := finalTraces(ctx, cfg, agent1, agent2, lastResponse1, lastResponse2, variant)

	if path, err := tr.Save(cfg.OutputsDir); err != nil {
		logger.Warnf("failed to save transcript: %v", err)
	} else {
		logger.Infof("💾 transcript saved to %s", path)
	}

	logger.Infof("%s DEBATE COMPLETE", variant)

	if showTUI {
		if err := tui.Run(tr, traces); err != nil {
			logger.Warnf("viewer error: %v", err)
		}
	}
}

// finalTraces builds one more rehearsal tree per agent against the
// opponent's last statement and logs the selected path step by step.
func finalTraces(ctx context.Context, cfg *config.Config, agent1, agent2 debate.Agent, last1, last2 string, variant string) []tui.Trace {
	if last1 == "" || last2 == "" || ctx.Err() != nil {
		return nil
	}

	var traces []tui.Trace
	for _, pair := range []struct {
		agent     debate.Agent
		statement string
	}{
		{agent1, last2},
		{agent2, last1},
	} {
		tree := pair.agent.BuildRehearsalTree(ctx, pair.statement)
		path := pair.agent.SelectBestPath(tree)

		logger.Infof("%s TREE PATH:", pair.agent.Position())
		for i, node := range path {
			excerpt := node.Content
			if len(excerpt) > 60 {
				excerpt = excerpt[:60] + "..."
			}
			logger.Infof("Step %d [%.2f]: %s", i+1, node.Score, excerpt)
		}

		name := fmt.Sprintf("%s_%s_final_tree", variant, sanitizeName(pair.agent.Position()))
		if _, err := viz.SaveTree(tree, cfg.OutputsDir, name); err != nil {
			logger.Warnf("tree visualization failed, skipping: %v", err)
		}

		traces = append(traces, tui.Trace{Position: pair.agent.Position(), Path: path})
	}
	return traces
}

func sanitizeName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

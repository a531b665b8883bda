package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/joripage/lob-engine/config"
	"github.com/joripage/lob-engine/pkg/engine/repo"
	"github.com/joripage/lob-engine/pkg/engine/worker"
	postgres_wrapper "github.com/joripage/lob-engine/pkg/infra/postgres"
	kafkawrapper "github.com/joripage/lob-engine/pkg/kafka_wrapper"
	"github.com/joripage/lob-engine/pkg/logging"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logging.NewLogger(logging.INFO)

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx := context.Background()

	db, err := postgres_wrapper.InitPostgres(cfg.EngineDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	sqlRepo := repo.NewRepo(db)

	tradeCG := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   cfg.Kafka.TradeTopic,
	})
	defer tradeCG.Close()

	eventCG := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   cfg.Kafka.OrderEventTopic,
	})
	defer eventCG.Close()

	w := worker.NewWorker(sqlRepo)

	go func() {
		if err := w.StartOrderEventConsumer(ctx, eventCG); err != nil {
			zap.S().Errorf("order event consumer stopped with err: %v", err)
		}
	}()

	if err := w.StartTradeConsumer(ctx, tradeCG); err != nil {
		zap.S().Errorf("trade consumer stopped with err: %v", err)
	}
}

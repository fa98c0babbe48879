package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/chatbooking/admin/backend/internal/config"
	"github.com/chatbooking/admin/backend/internal/remote"
	"github.com/chatbooking/admin/backend/internal/utils"
)

func main() {
	var op int
	var n int
	var providerID string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 为租户下所有服务者生成随机可预约时间, 2: 为指定服务者生成随机可预约时间)")
	flag.IntVar(&n, "n", 3, "每个服务者生成的特殊日期数量")
	flag.StringVar(&providerID, "provider-id", "", "随机生成可预约时间的服务者 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Seed.Token == "" {
		logger.Error("未配置 SEED_TOKEN")
		os.Exit(1)
	}

	// 创建远端客户端，seed 不需要记录指标
	client := remote.NewClient(cfg.RemoteAPI.URL, time.Duration(cfg.RemoteAPI.Timeout)*time.Second, nil)
	saver := availability.NewSaver(client)

	ctx := remote.WithToken(context.Background(), cfg.Seed.Token)

	seedProvider := func(id string) error {
		payload := availability.Serialize(
			utils.GenerateRandomSchedule(),
			utils.GenerateRandomExceptions(n, time.Now()),
		)

		result, err := saver.Save(ctx, id, payload)
		if err != nil {
			var writeErr *availability.RemoteWriteError
			if errors.As(err, &writeErr) {
				slog.Error("部分写入失败", slog.String("provider_id", id), slog.Any("failed", result.Failed))
			}
			return err
		}
		return nil
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if cfg.Seed.TenantID == "" {
			slog.Error("未配置 SEED_TENANT_ID")
			return
		}

		providers, err := client.ListProviders(ctx, cfg.Seed.TenantID)
		if err != nil {
			slog.Error("无法获取服务者列表", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, provider := range providers {
			if err := seedProvider(provider.ID); err != nil {
				slog.Error("无法写入可预约时间", slog.String("provider_id", provider.ID), slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("写入可预约时间成功", slog.Int("count", cnt), slog.Int("total", len(providers)))
	case 2:
		if providerID == "" {
			slog.Error("请输入合法的服务者 ID")
			return
		}

		if err := seedProvider(providerID); err != nil {
			slog.Error("无法写入可预约时间", slog.String("provider_id", providerID), slog.String("error", err.Error()))
			return
		}

		slog.Info("写入可预约时间成功", slog.String("provider_id", providerID))
	default:
		slog.Error("指定的操作非法")
	}
}

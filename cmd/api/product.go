package main

import (
	"strings"

	"salesnote/internal/domain/model"
	"salesnote/internal/infra/db"
	infraRepo "salesnote/internal/infra/repository"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// 商品マスタはAPIに出さないのでCLIで登録する
var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalog",
}

var productSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create a product or update its base price",
	RunE:  runProductSet,
}

var (
	productID    string
	productPrice string
)

func init() {
	productSetCmd.Flags().StringVar(&productID, "id", "", "product id")
	productSetCmd.Flags().StringVar(&productPrice, "price", "", "base price (e.g. 12.50)")
	_ = productSetCmd.MarkFlagRequired("id")
	_ = productSetCmd.MarkFlagRequired("price")

	productCmd.AddCommand(productSetCmd)
}

func runProductSet(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(productID)
	if id == "" {
		return errors.New("--id is required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(productPrice))
	if err != nil {
		return errors.Wrap(err, "--price is invalid")
	}
	if price.IsNegative() {
		return errors.New("--price must not be negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}

	clock := &realClock{}
	products := infraRepo.NewProductGormRepository(gormDB)
	if err := products.Upsert(cmd.Context(), model.Product{
		ID:        id,
		BasePrice: price,
		CreatedAt: clock.Now(),
		UpdatedAt: clock.Now(),
	}); err != nil {
		return errors.Wrap(err, "save product")
	}

	log.Info().Str("product_id", id).Str("price", price.String()).Msg("product saved")
	return nil
}

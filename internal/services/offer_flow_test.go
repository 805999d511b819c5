package services_test

import (
	"math"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stripledger/internal/repos"
	"stripledger/internal/services"
)

func fp(v float64) *float64 { return &v }

func TestOfferUpsertNeverDuplicates(t *testing.T) {
	db := memdb(t)
	offerRepo := repos.NewOfferRepo(db)
	svc := services.NewOfferService(offerRepo, repos.NewBuyerRepo(db), repos.NewProductRepo(db))

	_, err := svc.Upsert("buy-x", "prod-fs", []services.TierInput{
		{Label: "Mint 12/26+", Price: fp(60)},
		{Label: "Short 06/26", Price: fp(45)},
	}, fp(5), nil)
	if err != nil {
		t.Fatal(err)
	}

	// second write for the same pair updates in place
	_, err = svc.Upsert("buy-x", "prod-fs", []services.TierInput{
		{Label: "Mint 12/26+", Price: fp(62)},
	}, nil, fp(20))
	if err != nil {
		t.Fatal(err)
	}

	n, err := offerRepo.CountForPair("buy-x", "prod-fs")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want exactly one offer row, got %d", n)
	}

	rows, err := svc.ListByProduct("prod-fs")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || len(rows[0].Tiers) != 1 {
		t.Fatalf("tiers not replaced wholesale: %+v", rows)
	}
	if rows[0].Tiers[0].Price == nil || *rows[0].Tiers[0].Price != 62 {
		t.Fatalf("bad tier after upsert: %+v", rows[0].Tiers[0])
	}
	if rows[0].DingReductionPrice != nil || rows[0].DamagedPrice == nil {
		t.Fatalf("flat prices not replaced: %+v", rows[0].BuyerOffer)
	}
}

func TestOfferUpsertValidation(t *testing.T) {
	db := memdb(t)
	svc := services.NewOfferService(repos.NewOfferRepo(db), repos.NewBuyerRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Upsert("buy-x", "no-such-product", []services.TierInput{{Label: "Mint", Price: fp(1)}}, nil, nil); err != services.ErrUnknownProduct {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}
	five := []services.TierInput{{}, {}, {}, {}, {}}
	if _, err := svc.Upsert("buy-x", "prod-fs", five, nil, nil); err != services.ErrTooManyTiers {
		t.Fatalf("want ErrTooManyTiers, got %v", err)
	}
	if _, err := svc.Upsert("buy-x", "prod-fs", []services.TierInput{{Label: "Mint", Price: fp(-1)}}, nil, nil); err != services.ErrBadPrice {
		t.Fatalf("want ErrBadPrice, got %v", err)
	}
}

func TestRecommendationsForProduct(t *testing.T) {
	db := memdb(t)
	offerSvc := services.NewOfferService(repos.NewOfferRepo(db), repos.NewBuyerRepo(db), repos.NewProductRepo(db))
	recSvc := services.NewRecommendationService(repos.NewOfferRepo(db), repos.NewUserRepo(db))

	// Buyer X tier1 $60; Buyer Y (preferred) tier1 $65 tier2 $40
	if _, err := offerSvc.Upsert("buy-x", "prod-fs", []services.TierInput{
		{Label: "Mint 12/26+", Price: fp(60)},
		{Label: "Short 06/26", Price: fp(45)},
	}, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := offerSvc.Upsert("buy-y", "prod-fs", []services.TierInput{
		{Label: "Mint 12/26+", Price: fp(65)},
		{Label: "Short 06/26", Price: fp(40)},
	}, nil, nil); err != nil {
		t.Fatal(err)
	}

	recs, err := recSvc.ForProduct("prod-fs", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 recommendations, got %d", len(recs))
	}
	// tier 1: Buyer Y's 65 wins on price alone
	if recs[0].Best.BuyerID != "buy-y" || recs[0].Best.Price != 65 {
		t.Fatalf("bad tier-1 pick: %+v", recs[0].Best)
	}
	if math.Abs(recs[0].RecommendedAcquisitionPrice-65.0/1.2) > 1e-9 {
		t.Fatalf("bad tier-1 ceiling: %v", recs[0].RecommendedAcquisitionPrice)
	}
	// tier 2: Buyer X's 45 beats Y's 40
	if recs[1].Best.BuyerID != "buy-x" || recs[1].Best.Price != 45 {
		t.Fatalf("bad tier-2 pick: %+v", recs[1].Best)
	}

	// product nobody prices: empty list, no error
	recs, err = recSvc.ForProduct("prod-new", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Fatalf("want empty recommendations, got %+v", recs)
	}
}

func TestTargetMarginResolution(t *testing.T) {
	db := memdb(t)
	recSvc := services.NewRecommendationService(repos.NewOfferRepo(db), repos.NewUserRepo(db))

	// default when nothing is known
	if m := recSvc.TargetMargin("ghost-user", nil); m != 20 {
		t.Fatalf("want default 20, got %v", m)
	}
	// saved preference wins over default
	if err := recSvc.SaveMargin("u-clerk", 35); err != nil {
		t.Fatal(err)
	}
	if m := recSvc.TargetMargin("u-clerk", nil); m != 35 {
		t.Fatalf("want saved 35, got %v", m)
	}
	// explicit override wins over everything
	override := 10.0
	if m := recSvc.TargetMargin("u-clerk", &override); m != 10 {
		t.Fatalf("want override 10, got %v", m)
	}
	// range enforced on save
	if err := recSvc.SaveMargin("u-clerk", 90); err != services.ErrBadMargin {
		t.Fatalf("want ErrBadMargin, got %v", err)
	}
}

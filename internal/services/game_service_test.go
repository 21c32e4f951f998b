package services

import (
	"errors"
	"testing"

	"gaming_club_backend/internal/models"
)

func TestCreateGameDefaultsStatusToActive(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), nil)

	game, err := svc.CreateGame(CreateGameRequest{
		Name:        "Gran Turismo 7",
		Description: "Racing simulator with a full career mode.",
		Genre:       "racing",
		Price:       60,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if game.Status != models.GameStatusActive {
		t.Errorf("status = %q, want %q", game.Status, models.GameStatusActive)
	}
}

func TestCreateGameRejectsPriceAboveCap(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), nil)

	_, err := svc.CreateGame(CreateGameRequest{
		Name:        "Overpriced",
		Description: "This one costs more than any game should.",
		Genre:       "action",
		Price:       1001,
	})
	if !errors.Is(err, ErrGameValidation) {
		t.Fatalf("err = %v, want ErrGameValidation", err)
	}
}

func TestCreateGameRejectsNegativePrice(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), nil)

	_, err := svc.CreateGame(CreateGameRequest{
		Name:        "Freebie",
		Description: "Nobody pays to take this one home.",
		Genre:       "action",
		Price:       -1,
	})
	if !errors.Is(err, ErrGameValidation) {
		t.Fatalf("err = %v, want ErrGameValidation", err)
	}
}

func TestUpdateGameUnknownID(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), nil)

	price := 30.0
	_, err := svc.UpdateGame(404, UpdateGameRequest{Price: &price})
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

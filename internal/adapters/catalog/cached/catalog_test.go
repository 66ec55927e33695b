package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"cat-breed-search/internal/domain/breeds"
)

type countingCatalog struct {
	breedCalls int
	imageCalls int
	lastTerm   string
	fail       bool
}

func (c *countingCatalog) SearchBreeds(_ context.Context, term string, _ int) ([]breeds.Breed, error) {
	c.breedCalls++
	c.lastTerm = term
	if c.fail {
		return nil, errors.New("upstream down")
	}
	return []breeds.Breed{{ID: "beng", Name: "Bengal"}}, nil
}

func (c *countingCatalog) SearchImages(_ context.Context, breedID string) ([]breeds.Image, error) {
	c.imageCalls++
	if c.fail {
		return nil, errors.New("upstream down")
	}
	return []breeds.Image{{URL: "http://x/" + breedID + ".jpg"}}, nil
}

func TestCatalog_CachesSuccessfulLookups(t *testing.T) {
	next := &countingCatalog{}
	c := New(next, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.SearchBreeds(ctx, "Ben", 20); err != nil {
			t.Fatalf("SearchBreeds: %v", err)
		}
		if _, err := c.SearchImages(ctx, "beng"); err != nil {
			t.Fatalf("SearchImages: %v", err)
		}
	}
	// mismo término con otra capitalización pega en el cache
	_, _ = c.SearchBreeds(ctx, "ben", 20)

	if next.breedCalls != 1 || next.imageCalls != 1 {
		t.Fatalf("expected one upstream call each, got breeds=%d images=%d", next.breedCalls, next.imageCalls)
	}

	if next.lastTerm != "Ben" {
		t.Fatalf("expected upstream to get the term as typed, got %q", next.lastTerm)
	}

	// otro limit es otra clave
	_, _ = c.SearchBreeds(ctx, "ben", 5)
	if next.breedCalls != 2 {
		t.Fatalf("expected limit to be part of the key, got %d calls", next.breedCalls)
	}
}

func TestCatalog_ReturnedSliceIsIndependent(t *testing.T) {
	c := New(&countingCatalog{}, time.Minute)
	ctx := context.Background()

	first, _ := c.SearchBreeds(ctx, "ben", 20)
	first[0].Name = "mutated"

	second, _ := c.SearchBreeds(ctx, "ben", 20)
	if second[0].Name != "Bengal" {
		t.Fatalf("cached value was mutated through a returned slice")
	}
}

func TestCatalog_ErrorsAreNotCached(t *testing.T) {
	next := &countingCatalog{fail: true}
	c := New(next, time.Minute)
	ctx := context.Background()

	if _, err := c.SearchBreeds(ctx, "ben", 20); err == nil {
		t.Fatalf("expected error")
	}
	next.fail = false
	if _, err := c.SearchBreeds(ctx, "ben", 20); err != nil {
		t.Fatalf("expected recovery after upstream error, got %v", err)
	}
	if next.breedCalls != 2 {
		t.Fatalf("expected failed lookup not cached, got %d calls", next.breedCalls)
	}
}

func TestNew_ZeroTTLDisablesCache(t *testing.T) {
	next := &countingCatalog{}
	if got := New(next, 0); got != breeds.Catalog(next) {
		t.Fatalf("expected passthrough when ttl is zero")
	}
}

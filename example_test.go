package localnotes_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/localnotes"
)

// Example_basic creates a note, fills it in and finds it again.
func Example_basic() {
	ctx := context.Background()

	store, err := localnotes.New(ctx, "", localnotes.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	id := store.Create(ctx)
	store.Update(ctx, id, localnotes.Patch{}.WithTitle("Groceries").WithContent("eggs, milk"))
	store.Create(ctx)

	for _, n := range store.Search("EGGS") {
		fmt.Printf("%s: %s\n", n.Title, n.Content)
	}
	fmt.Println("notes:", store.Len())
	// Output:
	// Groceries: eggs, milk
	// notes: 2
}

// ExampleNew_filesystem shows the collection surviving a restart.
func ExampleNew_filesystem() {
	tmpDir, err := os.MkdirTemp("", "localnotes-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()

	store, err := localnotes.New(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	id := store.Create(ctx)
	store.Update(ctx, id, localnotes.Patch{}.WithTitle("Persisted"))

	reopened, err := localnotes.New(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	note, _ := reopened.Get(id)
	fmt.Println(note.Title)

	_, err = os.Stat(filepath.Join(tmpDir, localnotes.DefaultKey+".json"))
	fmt.Println("file exists:", err == nil)
	// Output:
	// Persisted
	// file exists: true
}

// Package loam provides a Go client for the Loam vector similarity
// store. Callers submit documents (text, precomputed embedding vectors
// and metadata) and retrieve nearest-neighbor matches for single or
// batched queries.
//
// # Basic usage
//
//	client, _ := loam.New(
//	    loam.WithBaseURL("http://localhost:8000"),
//	    loam.WithEmbedder(loam.NewOpenAIEmbedder(loam.OpenAIConfig{APIKey: key})),
//	)
//	col, _ := client.Collections().Ensure(ctx, "articles")
//	_ = col.Add(ctx, loam.Document{ID: "a1", Contents: "the quick brown fox"})
//	res, _ := col.Query(ctx, loam.Text("fast animals"), loam.WithNResults(3))
//
// Missing embeddings are resolved through the collection's embedding
// capability; documents that already carry vectors never trigger it.
//
// # Schema-first API with Go generics
//
//	type Article struct {
//	    ID    string `loam:"id,id"`
//	    Body  string `loam:"body,contents"`
//	    Topic string `loam:"topic,meta"`
//	    Year  int    `loam:"year,meta"`
//	}
//
//	idx, _ := loam.NewIndex[Article](client, "articles")
//	_ = idx.UpsertBatch(ctx, articles)
//	hits, _ := idx.Search().Query("fast animals").Limit(3).Do(ctx)
package loam

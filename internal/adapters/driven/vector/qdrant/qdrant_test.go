package qdrant

import (
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"

	"github.com/libris-ai/libris/internal/core/domain"
)

func TestPointUUIDIsDeterministic(t *testing.T) {
	a := pointUUID("hobbitul-j-r-r-tolkien")
	b := pointUUID("hobbitul-j-r-r-tolkien")
	c := pointUUID("dune-frank-herbert")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}

func TestDocumentFromPayload(t *testing.T) {
	payload := map[string]*pb.Value{
		payloadID:         {Kind: &pb.Value_StringValue{StringValue: "dune-frank-herbert"}},
		payloadDocument:   {Kind: &pb.Value_StringValue{StringValue: "Titlu: Dune\nRezumat: Arrakis."}},
		domain.MetaTitle:  {Kind: &pb.Value_StringValue{StringValue: "Dune"}},
		domain.MetaAuthor: {Kind: &pb.Value_StringValue{StringValue: "Frank Herbert"}},
	}

	doc := documentFromPayload(payload)
	assert.Equal(t, "dune-frank-herbert", doc.ID)
	assert.Equal(t, "Titlu: Dune\nRezumat: Arrakis.", doc.Document)
	assert.Equal(t, "Dune", doc.Metadata[domain.MetaTitle])
	assert.Equal(t, "Frank Herbert", doc.Metadata[domain.MetaAuthor])
	assert.NotContains(t, doc.Metadata, payloadID)
	assert.NotContains(t, doc.Metadata, payloadDocument)
}

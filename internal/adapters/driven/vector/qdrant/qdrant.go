// Package qdrant provides the Qdrant-backed vector store over gRPC.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/logger"
)

var _ driven.VectorStore = (*Store)(nil)

// payloadDocument is the payload key holding the embedded text.
const payloadDocument = "document"

// payloadID is the payload key holding the stable document slug. Qdrant
// point ids must be UUIDs or integers, so the slug lives in the payload and
// the point id is a UUID derived from it.
const payloadID = "id"

// scrollPageSize bounds one Scroll round trip.
const scrollPageSize = 256

// Store is the Qdrant-backed semantic index.
type Store struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// NewStore connects to a Qdrant instance.
func NewStore(host string, port int, collection string) (*Store, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant connect: %w", err)
	}
	return &Store{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// EnsureCollection creates the cosine-distance collection if it is missing.
func (s *Store) EnsureCollection(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("%w: invalid dimensions %d", domain.ErrInvalidInput, dimensions)
	}

	exists, err := s.collections.CollectionExists(ctx, &pb.CollectionExistsRequest{
		CollectionName: s.collection,
	})
	if err != nil {
		return fmt.Errorf("%w: checking collection: %v", domain.ErrVectorUnavailable, err)
	}
	if exists.GetResult().GetExists() {
		return nil
	}

	logger.Debug("Creating collection %q (%d dimensions, cosine)", s.collection, dimensions)
	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dimensions),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: creating collection: %v", domain.ErrVectorUnavailable, err)
	}
	return nil
}

// Upsert writes documents and their vectors. Point ids are UUIDs derived
// deterministically from the document slug, so re-ingestion overwrites.
func (s *Store) Upsert(ctx context.Context, docs []domain.IndexedDocument, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("%w: %d documents but %d vectors", domain.ErrInvalidInput, len(docs), len(vectors))
	}

	points := make([]*pb.PointStruct, len(docs))
	for i, d := range docs {
		payload := map[string]*pb.Value{
			payloadID:       {Kind: &pb.Value_StringValue{StringValue: d.ID}},
			payloadDocument: {Kind: &pb.Value_StringValue{StringValue: d.Document}},
		}
		for k, v := range d.Metadata {
			payload[k] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: v}}
		}
		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: pointUUID(d.ID)}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: vectors[i]}}},
			Payload: payload,
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}
	return nil
}

// Query runs a cosine similarity search and converts scores to distances.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	hits := make([]driven.VectorHit, len(resp.Result))
	for i, pt := range resp.Result {
		hits[i] = driven.VectorHit{
			Document: documentFromPayload(pt.Payload),
			Distance: 1 - float64(pt.Score),
		}
	}
	return hits, nil
}

// Scroll pages through every stored point.
func (s *Store) Scroll(ctx context.Context) ([]driven.StoredDocument, error) {
	var out []driven.StoredDocument
	limit := uint32(scrollPageSize)
	var offset *pb.PointId

	for {
		resp, err := s.points.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: s.collection,
			Limit:          &limit,
			Offset:         offset,
			WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
		})
		if err != nil {
			return nil, fmt.Errorf("qdrant scroll: %w", err)
		}
		for _, pt := range resp.Result {
			out = append(out, documentFromPayload(pt.Payload))
		}
		offset = resp.NextPageOffset
		if offset == nil {
			return out, nil
		}
	}
}

// Count returns the exact number of stored points.
func (s *Store) Count(ctx context.Context) (int, error) {
	exact := true
	resp, err := s.points.Count(ctx, &pb.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant count: %w", err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Close closes the gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// pointUUID derives a stable point id from the document slug.
func pointUUID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(slug)).String()
}

// documentFromPayload rebuilds a stored document from a point payload.
func documentFromPayload(payload map[string]*pb.Value) driven.StoredDocument {
	doc := driven.StoredDocument{Metadata: make(map[string]string)}
	for k, v := range payload {
		switch k {
		case payloadID:
			doc.ID = v.GetStringValue()
		case payloadDocument:
			doc.Document = v.GetStringValue()
		default:
			doc.Metadata[k] = v.GetStringValue()
		}
	}
	return doc
}

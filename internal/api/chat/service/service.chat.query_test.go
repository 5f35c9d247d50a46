package chatsvc

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogmodels "github.com/khanh20003/BanHang-ChatBot/internal/api/catalog/models"
	chatdto "github.com/khanh20003/BanHang-ChatBot/internal/api/chat/dto"
	"github.com/khanh20003/BanHang-ChatBot/internal/search"
)

type fakeFinder struct {
	products []catalogmodels.Product
}

func (f *fakeFinder) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]catalogmodels.Product, error) {
	return f.products, nil
}

type fakeReplier struct {
	reply string
}

func (r *fakeReplier) GenerateReply(ctx context.Context, message string, products []search.ProductView) string {
	return r.reply
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(products []catalogmodels.Product, replier Replier) *ChatService {
	engine := search.NewEngine(&fakeFinder{products: products}, nil, nil, 10, testLogger())
	return NewChatService(engine, replier, testLogger())
}

func TestQuery_ProductsFound(t *testing.T) {
	products := []catalogmodels.Product{
		{ID: primitive.NewObjectID(), Title: "iPhone 16", Status: catalogmodels.ProductStatusActive, Stock: 5},
		{ID: primitive.NewObjectID(), Title: "iPhone 16 Pro", Status: catalogmodels.ProductStatusActive, Stock: 3},
	}
	svc := newTestService(products, nil)

	resp := svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "mua iphone"})
	assert.Equal(t, "Tìm thấy 2 sản phẩm phù hợp.", resp.Response)
	assert.Len(t, resp.Products, 2)
	assert.Nil(t, resp.Actions, "actions cấp response luôn null, action gắn theo sản phẩm")
	assert.NotEmpty(t, resp.Timestamp)

	for _, p := range resp.Products {
		if assert.Len(t, p.Actions, 1) {
			assert.Equal(t, "add_to_cart", p.Actions[0].Type)
		}
	}
}

func TestQuery_EntityButNoMatch(t *testing.T) {
	// Có thực thể nhưng catalog không có hàng khớp → vẫn báo số lượng
	svc := newTestService(nil, nil)

	resp := svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "mua iphone"})
	assert.Equal(t, "Tìm thấy 0 sản phẩm phù hợp.", resp.Response)
	assert.Empty(t, resp.Products)
	assert.NotNil(t, resp.Products, "products luôn là mảng, không null")
}

func TestQuery_GeneralChatUsesReplier(t *testing.T) {
	svc := newTestService(nil, &fakeReplier{reply: "Chào bạn, shop có thể giúp gì?"})

	// Câu tổng quát không trích được thực thể nào
	resp := svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "xem tất cả sản phẩm"})
	assert.Equal(t, "Chào bạn, shop có thể giúp gì?", resp.Response)
}

func TestQuery_GeneralChatWithoutReplier(t *testing.T) {
	svc := newTestService(nil, nil)

	resp := svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "xem tất cả sản phẩm"})
	assert.Equal(t, MsgNotUnderstood, resp.Response)
}

type fakeIntentReplier struct {
	fakeReplier
	productIntent bool
}

func (r *fakeIntentReplier) DetectProductIntent(ctx context.Context, message string) bool {
	return r.productIntent
}

func TestQuery_ProductIntentWithoutEntities(t *testing.T) {
	// NLU nhận ra câu hỏi về sản phẩm nhưng không trích được thực thể → xin khách nói rõ
	svc := newTestService(nil, &fakeIntentReplier{fakeReplier: fakeReplier{reply: "lan man"}, productIntent: true})
	resp := svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "xem tất cả sản phẩm"})
	assert.Equal(t, MsgNotUnderstood, resp.Response)

	// Không phải câu hỏi sản phẩm → để NLU trả lời tự nhiên
	svc = newTestService(nil, &fakeIntentReplier{fakeReplier: fakeReplier{reply: "Chào bạn!"}, productIntent: false})
	resp = svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "xem tất cả sản phẩm"})
	assert.Equal(t, "Chào bạn!", resp.Response)
}

func TestQuery_ReplierEmptyFallsBack(t *testing.T) {
	svc := newTestService(nil, &fakeReplier{reply: ""})

	resp := svc.Query(context.Background(), &chatdto.ChatQueryInput{Message: "xem tất cả sản phẩm"})
	assert.Equal(t, MsgNotUnderstood, resp.Response)
}

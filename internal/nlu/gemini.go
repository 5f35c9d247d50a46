package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/khanh20003/BanHang-ChatBot/internal/common"
	"github.com/khanh20003/BanHang-ChatBot/internal/search"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client gọi Gemini generateContent qua REST. Mọi method đều được breaker bảo vệ:
// breaker mở → trả lỗi ngay không gọi mạng; lỗi quota → trip breaker.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	breaker *Breaker
	log     *logrus.Logger
}

// NewClient tạo client Gemini. timeout tính bằng giây; breaker nil sẽ dùng
// breaker cấp process.
func NewClient(apiKey, model string, timeout int, breaker *Breaker, log *logrus.Logger) *Client {
	if breaker == nil {
		breaker = DefaultBreaker()
	}
	if timeout <= 0 {
		timeout = 8
	}
	breaker.ObserveKey(apiKey)
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		breaker: breaker,
		log:     log,
	}
}

// SetBaseURL đổi endpoint gốc (dùng cho test với httptest server)
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// searchProductsTool là function declaration cho Gemini, mô tả các field
// mà engine tìm kiếm hiểu được
var searchProductsTool = map[string]interface{}{
	"functionDeclarations": []map[string]interface{}{
		{
			"name":        "search_products",
			"description": "Tìm kiếm sản phẩm theo các tiêu chí người dùng nhập",
			"parameters": map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					"name":     map[string]interface{}{"type": "STRING"},
					"brand":    map[string]interface{}{"type": "STRING"},
					"category": map[string]interface{}{"type": "STRING"},
					"model":    map[string]interface{}{"type": "STRING"},
					"color":    map[string]interface{}{"type": "STRING"},
					"min_price": map[string]interface{}{"type": "NUMBER"},
					"max_price": map[string]interface{}{"type": "NUMBER"},
					"rating":    map[string]interface{}{"type": "NUMBER"},
					"product_type": map[string]interface{}{
						"type": "STRING",
						"enum": []string{"newest", "trending", "best_seller", "flash_sale"},
					},
					"is_flash_sale": map[string]interface{}{"type": "BOOLEAN"},
					"sort_by": map[string]interface{}{
						"type": "STRING",
						"enum": []string{"price_asc", "price_desc"},
					},
				},
				"required": []string{},
			},
		},
	},
}

// Kiểu response tối thiểu của generateContent
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text         string `json:"text"`
				FunctionCall *struct {
					Name string                 `json:"name"`
					Args map[string]interface{} `json:"args"`
				} `json:"functionCall"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// generate gọi generateContent với payload cho trước
func (c *Client) generate(ctx context.Context, payload map[string]interface{}) (*generateResponse, error) {
	if c.apiKey == "" {
		return nil, common.NewError(common.ErrCodeExternalService, "Chưa cấu hình API key cho dịch vụ NLU", common.StatusServiceUnavailable, nil)
	}
	c.breaker.ObserveKey(c.apiKey)
	if c.breaker.Open() {
		return nil, common.ErrQuotaExceeded
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, common.ErrExternalTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.breaker.Trip()
		c.log.Warn("Gemini hết quota, ngừng gọi cho đến khi reset hoặc đổi key")
		return nil, common.ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("gemini trả về status %d: %s", resp.StatusCode, string(respBody))
		if c.breaker.TripOnQuotaError(err) {
			c.log.Warn("Gemini hết quota, ngừng gọi cho đến khi reset hoặc đổi key")
			return nil, common.ErrQuotaExceeded
		}
		return nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}
	if parsed.Error != nil {
		err := fmt.Errorf("gemini error %d (%s): %s", parsed.Error.Code, parsed.Error.Status, parsed.Error.Message)
		if c.breaker.TripOnQuotaError(err) {
			return nil, common.ErrQuotaExceeded
		}
		return nil, err
	}
	return &parsed, nil
}

// Entities trích thực thể tìm kiếm từ message bằng function calling.
// Thỏa interface search.EntitySource. Response được chuẩn hóa qua
// NormalizeEntities theo thứ tự: functionCall args → text JSON.
func (c *Client) Entities(ctx context.Context, message string) (*search.Entities, error) {
	prompt := "Bạn là trợ lý bán hàng điện tử.\n" +
		"Nếu người dùng hỏi về sản phẩm (giá, khuyến mãi, sản phẩm mới, thương hiệu...), hãy gọi function `search_products`.\n" +
		"Nếu họ hỏi thông tin khác (liên hệ, địa chỉ, trụ sở...), không cần gọi function.\n" +
		"Câu hỏi: " + message

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []map[string]interface{}{{"text": prompt}}},
		},
		"tools": []map[string]interface{}{searchProductsTool},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	resp, err := c.generate(ctx, payload)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.FunctionCall != nil {
				if e := NormalizeEntities(part.FunctionCall.Args); e != nil {
					return e, nil
				}
			}
			if part.Text != "" {
				if e := NormalizeEntities(part.Text); e != nil {
					return e, nil
				}
			}
		}
	}
	// Không có function call hợp lệ — không phải lỗi, chỉ là không có thực thể
	return nil, nil
}

// DetectProductIntent phân loại message có phải ý định mua/hỏi sản phẩm hay không.
// Mọi lỗi (quota, timeout, response lạ) → false, không bao giờ chặn pipeline.
func (c *Client) DetectProductIntent(ctx context.Context, message string) bool {
	prompt := "Bạn là AI phân loại ý định mua hàng cho chatbot bán hàng điện tử. Câu hỏi: \"" + message + "\"\n" +
		"- Nếu liên quan đến tìm, xem, so sánh, mua, hỏi giá, hỏi khuyến mãi, hỏi sản phẩm,... thì trả lời: YES\n" +
		"- Nếu liên quan đến thông tin ngoài sản phẩm (liên hệ, trụ sở, bảo hành, tuyển dụng, chính sách...) hoặc xã giao thì trả lời: NO\n" +
		"Chỉ trả lời đúng một từ: YES hoặc NO."

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []map[string]interface{}{{"text": prompt}}},
		},
	}

	resp, err := c.generate(ctx, payload)
	if err != nil {
		c.log.WithError(err).Debug("DetectProductIntent thất bại")
		return false
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.EqualFold(strings.TrimSpace(part.Text), "YES") {
				return true
			}
		}
	}
	return false
}

// GenerateReply sinh câu trả lời tự nhiên dựa trên message và danh sách sản phẩm
// gợi ý. Lỗi → chuỗi rỗng, caller tự dựng câu trả lời mặc định.
func (c *Client) GenerateReply(ctx context.Context, message string, products []search.ProductView) string {
	var sb strings.Builder
	sb.WriteString("Bạn là nhân viên tư vấn bán hàng điện tử.\n")
	sb.WriteString("Hãy trả lời thật thân thiện, đúng trọng tâm, tránh chào hỏi thừa.\n")
	sb.WriteString("Khách hàng hỏi: " + message + "\n")
	if len(products) > 0 {
		sb.WriteString("\nDanh sách sản phẩm gợi ý:\n")
		for _, p := range products {
			price := p.Price
			if p.CurrentPrice != nil {
				price = *p.CurrentPrice
			}
			sb.WriteString(fmt.Sprintf("- %s (giá: %.0f₫)\n", p.Title, price))
		}
	}
	sb.WriteString("Nếu không có sản phẩm phù hợp, hãy gợi ý nhóm sản phẩm nổi bật hoặc hỏi lại nhu cầu khách hàng.\nTrả lời:")

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []map[string]interface{}{{"text": sb.String()}}},
		},
	}

	resp, err := c.generate(ctx, payload)
	if err != nil {
		c.log.WithError(err).Debug("GenerateReply thất bại")
		return ""
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

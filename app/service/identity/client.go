package identity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Existence 远程用户服务的查询结果
type Existence int

const (
	// Indeterminate 超时、网络错误或非预期状态码
	Indeterminate Existence = iota
	Exists
	Absent
)

func (e Existence) String() string {
	switch e {
	case Exists:
		return "exists"
	case Absent:
		return "absent"
	}
	return "indeterminate"
}

// UserClient 查询用户服务 GET /api/users/{id}，复用同一个 http.Client
type UserClient struct {
	baseURL string
	client  *http.Client
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Check 200 存在；404/401 不存在；其余情况不确定，err 给出原因
func (c *UserClient) Check(ctx context.Context, userId uuid.UUID, token string) (Existence, error) {
	url := fmt.Sprintf("%s/api/users/%s", c.baseURL, userId)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Indeterminate, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Indeterminate, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return Exists, nil
	case http.StatusNotFound, http.StatusUnauthorized:
		return Absent, nil
	}
	return Indeterminate, fmt.Errorf("unexpected status code %d from user service", resp.StatusCode)
}

package test

import (
	"encoding/json"
	"testing"

	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/stretchr/testify/require"
)

// ErrorEqual 按错误码断言，消息只要求包含基础文案（WithTips 会追加提示）
func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
	require.Contains(t, resp.Msg, expected.Message)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	require.Equal(t, int32(200), resp.Code, "unexpected error: %s", resp.Msg)
}

// DecodeData 把 resp.Data 解码到目标结构，便于断言响应负载
func DecodeData(t *testing.T, resp response.ResponseBody, target any) {
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}

// Package qr 生成批次核验用的二维码图片。
package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// 二维码边长（像素），对应扫码页面的展示尺寸
const imageSize = 330

// EncodePNG 把签名载荷编码为 PNG 二维码
// 载荷形如 "<batch_number>|<hex_digest>"，扫码端原样提交做核验。
func EncodePNG(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, imageSize)
}

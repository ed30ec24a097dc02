/*
 * @Description: ID 生成和解码服务
 * @Author: 安知鱼
 * @Date: 2025-06-17 20:38:15
 * @LastEditTime: 2026-10-15 12:20:44
 * @LastEditors: 安知鱼
 */
package idgen

import (
	"fmt"
	mrand "math/rand"
	"sync"

	"github.com/sqids/sqids-go"
)

var (
	sqidsEncoder *sqids.Sqids
	encoderMu    sync.RWMutex
)

// DefaultAlphabet 是默认的字母表
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EntityType 定义了不同实体在生成公共 ID 时的类型标识。
// 数值与主站保持一致，否则链接和 JWT 中的 ID 无法互通。
const (
	EntityTypeUser      uint64 = 1  // 用户
	EntityTypeUserGroup uint64 = 4  // 用户组
	EntityTypeArticle   uint64 = 8  // 文章
	EntityTypeComment   uint64 = 11 // 评论
)

// shuffleAlphabet 使用种子打乱字母表
func shuffleAlphabet(seed string) string {
	var seedInt int64
	for i, c := range seed {
		seedInt += int64(c) * int64(i+1)
	}

	r := mrand.New(mrand.NewSource(seedInt))
	alphabet := []rune(DefaultAlphabet)
	r.Shuffle(len(alphabet), func(i, j int) {
		alphabet[i], alphabet[j] = alphabet[j], alphabet[i]
	})
	return string(alphabet)
}

// InitSqidsEncoderWithSeed 使用种子初始化 Sqids 编码器。
// 如果 seed 为空字符串，则使用默认字母表
func InitSqidsEncoderWithSeed(seed string) error {
	alphabet := DefaultAlphabet
	if seed != "" {
		alphabet = shuffleAlphabet(seed)
	}

	s, err := sqids.New(sqids.Options{
		MinLength: 4,
		Alphabet:  alphabet,
	})
	if err != nil {
		return fmt.Errorf("初始化 Sqids 编码器失败: %w", err)
	}

	encoderMu.Lock()
	sqidsEncoder = s
	encoderMu.Unlock()
	return nil
}

func encoder() (*sqids.Sqids, error) {
	encoderMu.RLock()
	defer encoderMu.RUnlock()
	if sqidsEncoder == nil {
		return nil, fmt.Errorf("Sqids 编码器未初始化")
	}
	return sqidsEncoder, nil
}

// GeneratePublicID 把数据库 ID 和实体类型编码为公共 ID
func GeneratePublicID(dbID uint, entityType uint64) (string, error) {
	enc, err := encoder()
	if err != nil {
		return "", err
	}
	id, err := enc.Encode([]uint64{uint64(dbID), entityType})
	if err != nil {
		return "", fmt.Errorf("编码公共ID失败: %w", err)
	}
	return id, nil
}

// DecodePublicID 解码公共 ID
func DecodePublicID(publicID string) (dbID uint, entityType uint64, err error) {
	enc, err := encoder()
	if err != nil {
		return 0, 0, err
	}

	numbers := enc.Decode(publicID)
	if len(numbers) != 2 {
		return 0, 0, fmt.Errorf("无法从公共ID解码出预期数量的数字(期望2个，得到%d个)", len(numbers))
	}
	return uint(numbers[0]), numbers[1], nil
}

// PublicIDOrRaw 生成公共 ID，编码失败时退回十进制数据库 ID，保证搜索结果总有可用的标识
func PublicIDOrRaw(dbID uint, entityType uint64) string {
	if id, err := GeneratePublicID(dbID, entityType); err == nil {
		return id
	}
	return fmt.Sprintf("%d", dbID)
}

/*
 * @Description: 基于 database/sql 的只读仓库公共工具
 * @Author: 安知鱼
 * @Date: 2026-10-15 11:40:12
 * @LastEditTime: 2026-10-15 11:40:12
 * @LastEditors: 安知鱼
 */
package sqlrepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Querier 是仓库需要的最小数据库能力，*sql.DB 与 *sql.Tx 都满足
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// base 保存连接和方言，所有仓库共用
type base struct {
	db      Querier
	dialect string
}

func (b *base) builder() *entsql.DialectBuilder {
	return entsql.Dialect(b.dialect)
}

// query 执行构建好的 SELECT，并对每一行调用 scan
func (b *base) query(ctx context.Context, sel *entsql.Selector, scan func(*sql.Rows) error) error {
	query, args := sel.Query()
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("执行查询失败: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("读取查询结果失败: %w", err)
		}
	}
	return rows.Err()
}

// timeLayouts 是 SQLite 文本时间可能使用的格式
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// dbTime 兼容不同驱动返回的时间类型（time.Time、文本、Unix 时间戳）
type dbTime struct {
	Time time.Time
}

var _ interface {
	Scan(any) error
} = (*dbTime)(nil)

func (t *dbTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case int64:
		t.Time = time.Unix(v, 0)
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("无法将 %T 转换为时间", value)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("无法解析时间 '%s'", s)
}

// Value 让 dbTime 也可以作为查询参数
func (t dbTime) Value() (driver.Value, error) {
	return t.Time, nil
}

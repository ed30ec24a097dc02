/*
 * @Description: 关键词匹配与上下文片段提取
 * @Author: 安知鱼
 * @Date: 2026-10-15 13:40:25
 * @LastEditTime: 2026-10-15 13:40:25
 * @LastEditors: 安知鱼
 */
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hollowpress/hollow-press/internal/pkg/parser"
	"github.com/hollowpress/hollow-press/internal/pkg/strutil"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
)

const (
	// MinTermLength 是关键词的最小长度（按字符计）
	MinTermLength = 3
	// maxSentencesPerTerm 每个关键词最多保留的句子数
	maxSentencesPerTerm = 2
	// maxSentenceLength 单个句子片段的最大长度
	maxSentenceLength = 200
	// contextRadius 没有句子边界时，命中位置两侧保留的字符数
	contextRadius = 60
	// excerptLength 没有上下文时摘要截取的长度
	excerptLength = 150
	// sentenceJoiner 连接同一关键词的多个句子
	sentenceJoiner = " … "
)

// ParseTerms 把查询拆分为关键词：转小写、按空白切分、丢弃过短的词、去重并保留首次出现的顺序
func ParseTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTermLength {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

type termPattern struct {
	term     string
	hit      *regexp.Regexp
	sentence *regexp.Regexp
}

// Matcher 对一组关键词预编译正则，可以被多个 goroutine 共享
type Matcher struct {
	patterns []termPattern
}

// NewMatcher 为关键词创建匹配器，关键词应已由 ParseTerms 处理
func NewMatcher(terms []string) *Matcher {
	m := &Matcher{patterns: make([]termPattern, 0, len(terms))}
	for _, term := range terms {
		quoted := regexp.QuoteMeta(term)
		m.patterns = append(m.patterns, termPattern{
			term:     term,
			hit:      regexp.MustCompile(`(?i)` + quoted),
			sentence: regexp.MustCompile(`(?i)[^.!?]*` + quoted + `[^.!?]*[.!?]?`),
		})
	}
	return m
}

// Match 返回文档中每个命中关键词的首个上下文。没有任何关键词命中时返回 nil，文档应被排除。
func (m *Matcher) Match(doc *model.SearchableDocument) []model.MatchRecord {
	return m.matchText(MatchText(doc))
}

func (m *Matcher) matchText(text string) []model.MatchRecord {
	if text == "" {
		return nil
	}
	hasBoundary := strings.ContainsAny(text, ".!?")

	var records []model.MatchRecord
	for _, p := range m.patterns {
		loc := p.hit.FindStringIndex(text)
		if loc == nil {
			continue
		}

		snippet := ""
		if hasBoundary {
			snippet = sentenceContext(p, text)
		}
		if snippet == "" {
			start := strutil.RuneIndex(text, loc[0])
			end := strutil.RuneIndex(text, loc[1])
			snippet = strutil.Window(text, start, end, contextRadius)
		}
		records = append(records, model.MatchRecord{Term: p.term, Context: snippet})
	}
	return records
}

// sentenceContext 返回包含关键词的前几个句子，超长句子截取以关键词为中心的窗口
func sentenceContext(p termPattern, text string) string {
	found := p.sentence.FindAllString(text, maxSentencesPerTerm)
	sentences := make([]string, 0, len(found))
	for _, s := range found {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, clipSentence(p.hit, s))
		}
	}
	return strings.Join(sentences, sentenceJoiner)
}

func clipSentence(hit *regexp.Regexp, s string) string {
	if utf8.RuneCountInString(s) <= maxSentenceLength {
		return s
	}
	loc := hit.FindStringIndex(s)
	if loc == nil {
		return strutil.Truncate(s, maxSentenceLength)
	}
	start := strutil.RuneIndex(s, loc[0])
	end := strutil.RuneIndex(s, loc[1])
	return strutil.Around(s, start, end, maxSentenceLength)
}

// MatchText 返回用于匹配的纯文本：标题与去除 HTML 的正文。
// 标题末尾没有句末标点时补上 ". "，让标题成为独立的句子。
func MatchText(doc *model.SearchableDocument) string {
	title := strings.TrimSpace(doc.Title)
	body := parser.StripHTML(doc.Body)
	switch {
	case title == "":
		return body
	case body == "":
		return title
	case strings.HasSuffix(title, ".") || strings.HasSuffix(title, "!") || strings.HasSuffix(title, "?"):
		return title + " " + body
	default:
		return title + ". " + body
	}
}

// Excerpt 返回第一条匹配的上下文，没有上下文时退回正文开头
func Excerpt(doc *model.SearchableDocument, matches []model.MatchRecord) string {
	if len(matches) > 0 && matches[0].Context != "" {
		return matches[0].Context
	}
	text := parser.StripHTML(doc.Body)
	if text == "" {
		text = doc.Title
	}
	return strutil.Truncate(text, excerptLength)
}

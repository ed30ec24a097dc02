/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-15 17:10:44
 * @LastEditors: 安知鱼
 */
package main

import "github.com/hollowpress/hollow-press/cmd/cli"

// @title           Hollow Press Search API
// @version         1.0
// @description     Hollow Press 全站搜索接口文档
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 在请求头中添加 Bearer Token，格式为: Bearer {token}
func main() {
	cli.Execute()
}

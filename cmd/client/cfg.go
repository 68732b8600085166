package main

type Config struct {
	// URL mysql:// 形式的连接地址
	URL string `yaml:"url"`
	// SQL 要执行的语句
	SQL string `yaml:"sql"`
	// Prepared 走预编译的二进制协议执行
	Prepared bool `yaml:"prepared"`
	// TimeoutSeconds 整条语句的超时，0 表示不限
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

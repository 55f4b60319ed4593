// Package context 提供上下文与身份管理相关的子包。
//
// 子包列表：
//   - xctx: Context 增强，注入/提取身份（平台、租户）信息
//   - xenv: 环境变量管理，部署类型检测
//
// 设计原则：
//   - 所有上下文信息通过 context.Context 传递，不使用全局变量
//   - 通过 WithXxx/Xxx 函数显式注入/提取；本包不提供中间件
//   - 支持 W3C Trace Context 标准
package context

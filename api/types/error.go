/*
 * Copyright 2024 The TickerFlow Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"fmt"
)

// ConfigError 节点配置错误，终止整次节点调用
// ConfigError describes an invalid node configuration. It is fatal for the
// whole invocation, unlike per-record evaluation failures which are absorbed
// inside the node.
type ConfigError struct {
	// NodeType 组件类型
	NodeType string
	// Field 出错的配置字段
	Field string
	// Reason 错误原因
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration field %q: %s", e.NodeType, e.Field, e.Reason)
}

// NewConfigError 创建配置错误
// NewConfigError creates a configuration error for the given node type and field.
func NewConfigError(nodeType, field, reason string) *ConfigError {
	return &ConfigError{NodeType: nodeType, Field: field, Reason: reason}
}

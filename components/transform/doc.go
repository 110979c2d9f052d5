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

// Package transform provides the record combination components:
//
// - Merge: combines two record lists by append, position, key join or branch selection
//
// Each component is registered with the package Registry, which the default
// registry in the root package aggregates.
package transform

import (
	"github.com/tickerflow/tickerflow/api/types"
)

// Registry transform包的组件注册器
// Registry collects the components of this package.
var Registry = new(types.SafeComponentSlice)

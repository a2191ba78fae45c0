// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the compiler (source -> lexer -> parser -> translate) to guard
// against panics and hangs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// полный driver.CompileSource.
//
// Не делает: генерацию корпусов, запись файлов, выполнение скриптов.

package fuzztests

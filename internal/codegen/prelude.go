package codegen

// emitHeaders writes the fixed `#include` block every translation unit
// opens with. Grounded verbatim on
// _examples/original_source/src/codegen/cpp_generator.cpp's
// generateHeaders(): the include list is frozen, not derived from
// which Pascal features the source actually uses.
func (g *Generator) emitHeaders() {
	g.emitLine("// Generated by tp2cpp")
	for _, inc := range []string{
		"iostream", "iomanip", "fstream", "string", "array", "set", "algorithm",
		"cstdint", "cmath", "cstdlib", "ctime", "cctype", "memory", "limits",
		"type_traits", "thread", "chrono", "filesystem",
	} {
		g.emitLine("#include <" + inc + ">")
	}
	g.blank()
	g.emitRuntimeIncludes()
}

// emitRuntimeIncludes writes the frozen pascal_* runtime contract:
// the I/O error slot, the Delete/Insert string procedures, the
// PascalFile/PascalTypedFile wrapper classes, and pascal_ioresult().
// These are the only runtime names the emitted text defines; the other
// pascal_* helpers builtin emission calls (pascal_pos, pascal_trim, the
// CRT shims, ...) are referenced by name only and are not defined here.
func (g *Generator) emitRuntimeIncludes() {
	for _, line := range strlinesSplit(runtimeIncludesText) {
		if line == "" {
			g.blank()
			continue
		}
		g.emitLine(line)
	}
	g.blank()
}

func strlinesSplit(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

const runtimeIncludesText = `// Global I/O error tracking
static int g_last_io_error = 0;

void Delete(std::string& s, int index, int count) {
    if (index <= 0 || index > static_cast<int>(s.length())) return;
    s.erase(index - 1, count);
}

void Insert(const std::string& substr, std::string& s, int index) {
    if (index <= 0) index = 1;
    if (index > static_cast<int>(s.length()) + 1) index = static_cast<int>(s.length()) + 1;
    s.insert(index - 1, substr);
}

class PascalFile {
public:
    PascalFile() = default;
    ~PascalFile() { close(); }

    void assign(const std::string& filename) { filename_ = filename; }

    void reset() {
        close();
        stream_.open(filename_, std::ios::in);
        g_last_io_error = stream_.good() ? 0 : 2;
    }

    void rewrite() {
        close();
        stream_.open(filename_, std::ios::out);
        g_last_io_error = stream_.good() ? 0 : 3;
    }

    void append() {
        close();
        stream_.open(filename_, std::ios::out | std::ios::app);
        g_last_io_error = stream_.good() ? 0 : 3;
    }

    void close() {
        if (stream_.is_open()) stream_.close();
    }

    bool eof() const { return stream_.eof(); }

    std::fstream& getStream() { return stream_; }
    const std::string& getFilename() const { return filename_; }

private:
    std::fstream stream_;
    std::string filename_;
};

template<typename T>
class PascalTypedFile {
public:
    PascalTypedFile() = default;
    ~PascalTypedFile() { close(); }

    void assign(const std::string& filename) { filename_ = filename; }

    void reset() {
        close();
        stream_.open(filename_, std::ios::in | std::ios::binary);
    }

    void rewrite() {
        close();
        stream_.open(filename_, std::ios::out | std::ios::binary);
    }

    void close() {
        if (stream_.is_open()) stream_.close();
    }

    bool eof() const { return stream_.eof(); }

    void write(const T& data) {
        stream_.write(reinterpret_cast<const char*>(&data), sizeof(T));
    }

    void read(T& data) {
        stream_.read(reinterpret_cast<char*>(&data), sizeof(T));
    }

    std::fstream& getStream() { return stream_; }
    const std::string& getFilename() const { return filename_; }

private:
    std::fstream stream_;
    std::string filename_;
};

int pascal_ioresult() {
    int result = g_last_io_error;
    g_last_io_error = 0;
    return result;
}`

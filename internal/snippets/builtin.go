package snippets

// builtinPools holds the code snippets shipped with the binary, keyed by
// language. User pools loaded from disk are merged on top of these.
var builtinPools = map[string][]string{
	"javascript": {
		`const sum = (arr) => arr.reduce((acc, n) => acc + n, 0);
console.log(sum([1, 2, 3, 4, 5]));`,
		`function debounce(fn, delay) {
  let timer = null;
  return (...args) => {
    clearTimeout(timer);
    timer = setTimeout(() => fn(...args), delay);
  };
}`,
		`const users = await fetch('/api/users').then((res) => res.json());
const names = users.map((user) => user.name).sort();`,
		`class Queue {
  #items = [];
  enqueue(item) { this.#items.push(item); }
  dequeue() { return this.#items.shift(); }
  get size() { return this.#items.length; }
}`,
	},
	"typescript": {
		`interface Point {
  x: number;
  y: number;
}

function distance(a: Point, b: Point): number {
  return Math.hypot(a.x - b.x, a.y - b.y);
}`,
		`type Result<T> = { ok: true; value: T } | { ok: false; error: string };

function unwrap<T>(result: Result<T>): T {
  if (!result.ok) throw new Error(result.error);
  return result.value;
}`,
		`const groupBy = <T, K extends string>(items: T[], key: (item: T) => K) =>
  items.reduce((acc, item) => {
    (acc[key(item)] ??= []).push(item);
    return acc;
  }, {} as Record<K, T[]>);`,
	},
	"python": {
		`def fibonacci(n):
    a, b = 0, 1
    for _ in range(n):
        yield a
        a, b = b, a + b`,
		`from collections import Counter

def most_common_word(text):
    words = text.lower().split()
    return Counter(words).most_common(1)[0][0]`,
		`class Stack:
    def __init__(self):
        self._items = []

    def push(self, item):
        self._items.append(item)

    def pop(self):
        return self._items.pop()`,
		`with open("data.txt") as f:
    lines = [line.strip() for line in f if line.strip()]
    print(f"read {len(lines)} lines")`,
	},
	"java": {
		`public static int binarySearch(int[] arr, int target) {
    int lo = 0, hi = arr.length - 1;
    while (lo <= hi) {
        int mid = (lo + hi) >>> 1;
        if (arr[mid] == target) return mid;
        if (arr[mid] < target) lo = mid + 1;
        else hi = mid - 1;
    }
    return -1;
}`,
		`List<String> names = people.stream()
    .filter(p -> p.getAge() >= 18)
    .map(Person::getName)
    .sorted()
    .collect(Collectors.toList());`,
		`record Point(double x, double y) {
    double distanceTo(Point other) {
        return Math.hypot(x - other.x, y - other.y);
    }
}`,
	},
	"cpp": {
		`#include <vector>
#include <algorithm>

int max_element_value(const std::vector<int>& v) {
    return *std::max_element(v.begin(), v.end());
}`,
		`template <typename T>
T clamp(T value, T lo, T hi) {
    if (value < lo) return lo;
    if (value > hi) return hi;
    return value;
}`,
		`struct Node {
    int value;
    std::unique_ptr<Node> next;
};

void push_front(std::unique_ptr<Node>& head, int value) {
    head = std::make_unique<Node>(Node{value, std::move(head)});
}`,
	},
	"go": {
		`func Map[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}`,
		`func worker(ctx context.Context, jobs <-chan int, results chan<- int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			results <- job * job
		}
	}
}`,
		`resp, err := http.Get(url)
if err != nil {
	return fmt.Errorf("fetch %s: %w", url, err)
}
defer resp.Body.Close()`,
		`type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}`,
	},
	"rust": {
		`fn largest<T: PartialOrd>(list: &[T]) -> &T {
    let mut largest = &list[0];
    for item in list {
        if item > largest {
            largest = item;
        }
    }
    largest
}`,
		`let evens: Vec<i32> = (1..=20).filter(|n| n % 2 == 0).collect();
println!("{:?}", evens);`,
		`match result {
    Ok(value) => println!("got {}", value),
    Err(e) => eprintln!("failed: {}", e),
}`,
	},
}

// defaultWords is the fallback pool for word mode when no user list exists.
var defaultWords = []string{
	"the", "of", "and", "to", "in", "that", "was", "his", "he", "it",
	"with", "is", "for", "as", "had", "you", "not", "be", "her", "on",
	"at", "by", "which", "have", "or", "from", "this", "him", "but", "all",
	"she", "they", "were", "my", "are", "me", "one", "their", "so", "an",
	"said", "them", "we", "who", "would", "been", "will", "no", "when", "there",
	"if", "more", "out", "up", "into", "do", "any", "your", "what", "has",
	"man", "could", "other", "than", "then", "some", "very", "time", "upon", "about",
	"may", "its", "only", "now", "like", "little", "can", "should", "made", "did",
	"us", "such", "great", "before", "must", "two", "these", "see", "know", "over",
	"much", "down", "after", "first", "mr", "good", "men", "own", "never", "most",
}
